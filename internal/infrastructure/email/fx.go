package email

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
)

// Module provides the Resend email client for fx DI
var Module = fx.Module("email",
	fx.Provide(
		func(cfg *config.EmailConfig, logger zerolog.Logger) *Client {
			return NewClient(cfg, logger.With().Str("component", "resend").Logger())
		},
	),
)
