package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/wichtel-api-go/pkg/auth"
	"github.com/arnavshah/wichtel-api-go/pkg/config"
	"github.com/arnavshah/wichtel-api-go/pkg/database"
	"github.com/arnavshah/wichtel-api-go/pkg/metrics"
	"github.com/arnavshah/wichtel-api-go/pkg/models"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.InitDB(config.Config{DataPath: filepath.Join(t.TempDir(), "handlers.db")})
	require.NoError(t, err)
	return New(db, auth.NewSigner("jwt", "master"), metrics.NewCollector(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPairsInInputOrder(t *testing.T) {
	assignment := models.Assignment{"C": "A", "A": "B"}

	pairs := pairsInInputOrder([]string{"A", "B", "C", "A"}, assignment)

	require.Equal(t, []database.DrawPair{
		{Giver: "A", Recipient: "B"},
		{Giver: "C", Recipient: "A"},
	}, pairs)
}

func TestDuplicateEntries(t *testing.T) {
	require.Equal(t, 0, duplicateEntries([]string{"A", "B"}))
	require.Equal(t, 3, duplicateEntries([]string{"A", "A", "B", "A", "B"}))
}

func TestDraw_WithoutKeyContext(t *testing.T) {
	h := newTestHandler(t)
	r := gin.New()
	r.POST("/draw", h.Draw)

	req := httptest.NewRequest(http.MethodPost, "/draw", bytes.NewBufferString(`{"persons": ["A", "B"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "API Key context missing")
}

func TestDraw_StoresPairs(t *testing.T) {
	h := newTestHandler(t)
	apiKey := database.APIKey{Key: "family.sig", Name: "family", RateLimit: 10}
	require.NoError(t, h.DB.Create(&apiKey).Error)

	r := gin.New()
	r.POST("/draw", func(c *gin.Context) {
		c.Set("apiKey", &apiKey)
		c.Next()
	}, h.Draw)

	req := httptest.NewRequest(http.MethodPost, "/draw", bytes.NewBufferString(`{"persons": ["NameA", "NameB"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var draw database.Draw
	require.NoError(t, h.DB.Preload("Pairs").Where("key_id = ?", apiKey.ID).First(&draw).Error)
	require.Equal(t, "skip", draw.Policy)
	require.Equal(t, 2, draw.PersonCount)
	require.Len(t, draw.Pairs, 2)

	var usage database.APIUsage
	require.NoError(t, h.DB.Where("key_id = ?", apiKey.ID).First(&usage).Error)
	require.Equal(t, 1, usage.RequestCount)
	require.Equal(t, 2, usage.TotalPersons)
}
