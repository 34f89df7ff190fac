package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnavshah/wichtel-api-go/pkg/config"
)

func TestInitDB_SQLite(t *testing.T) {
	db, err := InitDB(config.Config{DataPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)

	draw := Draw{
		ID:          "7f1c1a3e-0000-4000-8000-000000000001",
		KeyID:       1,
		Policy:      "skip",
		PersonCount: 2,
		Pairs: []DrawPair{
			{Giver: "Alice", Recipient: "Bob"},
			{Giver: "Bob", Recipient: "Alice"},
		},
	}
	require.NoError(t, db.Create(&draw).Error)

	var got Draw
	require.NoError(t, db.Preload("Pairs").First(&got, "id = ?", draw.ID).Error)
	require.Equal(t, 2, got.PersonCount)
	require.Len(t, got.Pairs, 2)

	// A giver appears once per draw.
	err = db.Create(&DrawPair{DrawID: draw.ID, Giver: "Alice", Recipient: "Carol"}).Error
	require.Error(t, err)
}
