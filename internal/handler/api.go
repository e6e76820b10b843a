package handler

import (
	"time"

	"github.com/recipeshare/internal/config"
	"github.com/recipeshare/internal/service"
	"github.com/recipeshare/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	users        *service.UserService
	profiles     *service.ProfileService
	recipes      *service.RecipeService
	engagement   *service.EngagementService
	journal      *service.JournalService
	uploads      *storage.LocalStore
	recentWindow time.Duration
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, cfg config.AppConfig) *API {
	uploads := storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes)

	window := cfg.RecentRecipeWindow
	if window <= 0 {
		window = 24 * time.Hour
	}

	return &API{
		db:           db,
		users:        service.NewUserService(db, cfg.BcryptCost),
		profiles:     service.NewProfileService(db),
		recipes:      service.NewRecipeService(db),
		engagement:   service.NewEngagementService(db),
		journal:      service.NewJournalService(db, uploads),
		uploads:      uploads,
		recentWindow: window,
	}
}
