package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/domain"
	"github.com/Conte777/brewquest/internal/infrastructure"
)

func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),

		infrastructure.Module,

		domain.Module,
	)
}
