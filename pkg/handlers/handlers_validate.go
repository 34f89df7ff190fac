package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/wichtel-api-go/pkg/models"
	"github.com/arnavshah/wichtel-api-go/pkg/wichtel"
)

// ValidateInput checks a draw request without drawing.
// Duplicate names are reported as warnings only; the draw endpoint accepts them.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.DrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if _, err := wichtel.ParsePolicy(input.Policy); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if len(input.Persons) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one person is required"})
		return
	}

	if len(input.Persons) == 1 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least two persons are required for anybody to get a recipient"})
		return
	}

	dups := wichtel.Duplicates(input.Persons)
	warnings := make([]string, 0, len(dups))
	for _, name := range dups {
		warnings = append(warnings, "Duplicate person: "+name)
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"stats": gin.H{
			"person_count": len(input.Persons),
			"unique_count": len(input.Persons) - duplicateEntries(input.Persons),
		},
	})
}

func duplicateEntries(persons []string) int {
	seen := make(map[string]bool, len(persons))
	n := 0
	for _, p := range persons {
		if seen[p] {
			n++
		}
		seen[p] = true
	}
	return n
}
