package bootstrap

import (
	"log/slog"

	"github.com/atelierpoint/studio-backend/internal/consultation"
	"github.com/atelierpoint/studio-backend/internal/database"
	"github.com/atelierpoint/studio-backend/internal/portfolio"
	"github.com/atelierpoint/studio-backend/internal/testimonial"
	"github.com/atelierpoint/studio-backend/internal/user"
	"go.uber.org/fx"
)

func ProvideUserStore(db *database.DB, cfg *Config, logger *slog.Logger) *user.Store {
	return user.NewStore(db, cfg.OwnerOpenID, logger.With("store", "user"))
}

func ProvidePortfolioStore(db *database.DB) *portfolio.Store {
	return portfolio.NewStore(db)
}

func ProvideTestimonialStore(db *database.DB) *testimonial.Store {
	return testimonial.NewStore(db)
}

func ProvideConsultationStore(db *database.DB) *consultation.Store {
	return consultation.NewStore(db)
}

func RunMigrations(
	userStore *user.Store,
	portfolioStore *portfolio.Store,
	testimonialStore *testimonial.Store,
	consultationStore *consultation.Store,
) error {
	if err := userStore.Migrate(); err != nil {
		return err
	}
	if err := portfolioStore.Migrate(); err != nil {
		return err
	}
	if err := testimonialStore.Migrate(); err != nil {
		return err
	}
	return consultationStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideUserStore,
		ProvidePortfolioStore,
		ProvideTestimonialStore,
		ProvideConsultationStore,
	),
	fx.Invoke(RunMigrations),
)
