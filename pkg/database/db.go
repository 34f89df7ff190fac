package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnavshah/wichtel-api-go/pkg/config"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"` // draws per day
	Revoked    bool       `gorm:"default:false" json:"revoked"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key and day
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalPersons   int    `gorm:"default:0" json:"total_persons"`
	SkippedPersons int    `gorm:"default:0" json:"skipped_persons"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Draw is a stored wichtel draw
type Draw struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	KeyID         uint       `gorm:"index;not null" json:"-"`
	Policy        string     `gorm:"not null" json:"policy"`
	PersonCount   int        `json:"person_count"`
	SkippedCount  int        `json:"skipped_count"`
	CoverageScore float64    `json:"coverage_score"`
	CreatedAt     time.Time  `json:"created_at"`
	Pairs         []DrawPair `gorm:"constraint:OnDelete:CASCADE" json:"pairs"`
}

// DrawPair is one giver/recipient row of a draw
type DrawPair struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	DrawID    string `gorm:"size:36;uniqueIndex:idx_draw_giver;not null" json:"-"`
	Giver     string `gorm:"uniqueIndex:idx_draw_giver;not null" json:"giver"`
	Recipient string `gorm:"not null" json:"recipient"`
}

// InitDB opens postgres when DatabaseURL is set, the sqlite file at DataPath otherwise,
// and migrates the schema
func InitDB(cfg config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	gormCfg := &gorm.Config{
		PrepareStmt: false,
		Logger:      logger.Default.LogMode(logger.Warn),
	}

	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		}), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.DataPath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &Draw{}, &DrawPair{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
