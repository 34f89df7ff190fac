package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arnavshah/wichtel-api-go/pkg/database"
	"github.com/arnavshah/wichtel-api-go/pkg/models"
	"github.com/arnavshah/wichtel-api-go/pkg/wichtel"
)

// MaxAttempts caps how many greedy passes a single request may ask for
const MaxAttempts = 100

// Draw handles the JSON draw request and stores the result
func (h *Handler) Draw(c *gin.Context) {
	var input models.DrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy, err := wichtel.ParsePolicy(input.Policy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Attempts < 0 || input.Attempts > MaxAttempts {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attempts must be between 0 and 100"})
		return
	}

	apiKey, ok := currentKey(c)
	if !ok {
		return
	}

	d := wichtel.NewDrawer(input.Persons, wichtel.NewRandomSource())
	d.Policy = policy

	start := time.Now()
	assignment, err := d.DrawBest(input.Attempts)
	elapsed := time.Since(start)

	if err != nil {
		h.Metrics.ObserveDraw(policy.String(), "exhausted", len(input.Persons), 0, 0, elapsed)
		h.RecordUsage(c, len(input.Persons), 0)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	skipped := d.Skipped()
	h.Metrics.ObserveDraw(policy.String(), "ok", len(input.Persons), len(skipped), d.CoverageScore(), elapsed)

	draw := database.Draw{
		ID:            uuid.NewString(),
		KeyID:         apiKey.ID,
		Policy:        policy.String(),
		PersonCount:   len(input.Persons),
		SkippedCount:  len(skipped),
		CoverageScore: d.CoverageScore(),
		Pairs:         pairsInInputOrder(input.Persons, assignment),
	}

	// Create saves the draw and its pairs in one transaction
	if err := h.DB.Create(&draw).Error; err != nil {
		h.Logger.Error("could not store draw", "key", apiKey.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store draw"})
		return
	}

	h.RecordUsage(c, len(input.Persons), len(skipped))

	if dups := wichtel.Duplicates(input.Persons); len(dups) > 0 {
		h.Logger.Warn("draw with duplicate names", "draw", draw.ID, "names", dups)
	}
	h.Logger.Info("draw stored", "draw", draw.ID, "key", apiKey.Name, "persons", draw.PersonCount, "skipped", draw.SkippedCount)

	c.JSON(http.StatusOK, models.DrawResponse{
		ID:            draw.ID,
		Assignments:   assignment,
		Skipped:       skipped,
		CoverageScore: draw.CoverageScore,
	})
}

// pairsInInputOrder flattens the mapping, ordered by first appearance of the giver.
func pairsInInputOrder(persons []string, assignment models.Assignment) []database.DrawPair {
	pairs := make([]database.DrawPair, 0, len(assignment))
	seen := make(map[string]bool, len(assignment))
	for _, p := range persons {
		recipient, ok := assignment[p]
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, database.DrawPair{Giver: p, Recipient: recipient})
	}
	return pairs
}

func (h *Handler) findDraw(c *gin.Context) (*database.Draw, bool) {
	apiKey, ok := currentKey(c)
	if !ok {
		return nil, false
	}

	var draw database.Draw
	err := h.DB.Preload("Pairs", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("id = ? AND key_id = ?", c.Param("id"), apiKey.ID).First(&draw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draw not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load draw"})
		return nil, false
	}
	return &draw, true
}

// GetDraw returns a stored draw owned by the calling key
func (h *Handler) GetDraw(c *gin.Context) {
	draw, ok := h.findDraw(c)
	if !ok {
		return
	}

	assignment := make(models.Assignment, len(draw.Pairs))
	for _, p := range draw.Pairs {
		assignment[p.Giver] = p.Recipient
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             draw.ID,
		"policy":         draw.Policy,
		"person_count":   draw.PersonCount,
		"skipped_count":  draw.SkippedCount,
		"coverage_score": draw.CoverageScore,
		"created_at":     draw.CreatedAt,
		"assignments":    assignment,
	})
}

// GetRecipient tells a single giver whom they drew. A name containing '/' must be sent
// escaped as %2F; the router matches on the raw path.
func (h *Handler) GetRecipient(c *gin.Context) {
	draw, ok := h.findDraw(c)
	if !ok {
		return
	}

	person := c.Param("person")
	for _, p := range draw.Pairs {
		if p.Giver == person {
			c.JSON(http.StatusOK, models.Pair{Giver: p.Giver, Recipient: p.Recipient})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Person has no recipient in this draw"})
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, personCount, skippedCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	// OnConflict works for both Postgres and SQLite
	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("request_count + ?", 1),
			"total_persons":   gorm.Expr("total_persons + ?", personCount),
			"skipped_persons": gorm.Expr("skipped_persons + ?", skippedCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:          apiKey.ID,
		Date:           today(),
		RequestCount:   1,
		TotalPersons:   personCount,
		SkippedPersons: skippedCount,
	}).Error
	if err != nil {
		h.Logger.Warn("could not record usage", "key", apiKey.Name, "error", err)
	}
}
