package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/wichtel-api-go/pkg/database"
)

// GetMyUsage returns usage stats for the authenticated API key
func (h *Handler) GetMyUsage(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		return
	}

	var usage []database.APIUsage
	if err := h.DB.Where("key_id = ?", apiKey.ID).Order("date desc").Limit(30).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch usage details"})
		return
	}

	var totalRequests, totalPersons, totalSkipped int64
	for _, u := range usage {
		totalRequests += int64(u.RequestCount)
		totalPersons += int64(u.TotalPersons)
		totalSkipped += int64(u.SkippedPersons)
	}

	var draws int64
	h.DB.Model(&database.Draw{}).Where("key_id = ?", apiKey.ID).Count(&draws)

	c.JSON(http.StatusOK, gin.H{
		"key_name":      apiKey.Name,
		"rate_limit":    apiKey.RateLimit,
		"usage_history": usage,
		"totals": gin.H{
			"requests":     totalRequests,
			"persons":      totalPersons,
			"skipped":      totalSkipped,
			"stored_draws": draws,
		},
	})
}
