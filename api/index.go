package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/wichtel-api-go/pkg/auth"
	"github.com/arnavshah/wichtel-api-go/pkg/config"
	"github.com/arnavshah/wichtel-api-go/pkg/database"
	"github.com/arnavshah/wichtel-api-go/pkg/handlers"
	"github.com/arnavshah/wichtel-api-go/pkg/metrics"
	"github.com/arnavshah/wichtel-api-go/pkg/router"
)

var r *gin.Engine

func init() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env only exists for local testing with vercel dev
	config.LoadEnv()
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	if _, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Warn("could not create admin user", "error", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r = router.New(handlers.New(db, auth.NewSigner(cfg.JWTSecret, cfg.MasterSecret), metrics.NewCollector(), logger))
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
