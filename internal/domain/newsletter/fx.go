package newsletter

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/brewquest/config"
	contentdeps "github.com/Conte777/brewquest/internal/domain/content/deps"
	contententities "github.com/Conte777/brewquest/internal/domain/content/entities"
	journeydeps "github.com/Conte777/brewquest/internal/domain/journey/deps"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	newsletterhttp "github.com/Conte777/brewquest/internal/domain/newsletter/delivery/http"
	"github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	"github.com/Conte777/brewquest/internal/domain/newsletter/repository/postgres"
	"github.com/Conte777/brewquest/internal/domain/newsletter/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/email"
	"github.com/Conte777/brewquest/internal/infrastructure/http/server"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// Module provides the newsletter dispatcher for fx DI
var Module = fx.Module("newsletter",
	fx.Provide(
		postgres.NewRepository,
		NewEmailSenderFx,
		NewDigestSourceFx,
		NewDispatcherFx,
		newsletterhttp.NewHandler,
		newsletterhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func NewEmailSenderFx(client *email.Client) deps.EmailSender {
	return client
}

// digestSource joins the tracker and the content scheduler for the weekly digest
type digestSource struct {
	tracker   journeydeps.Tracker
	scheduler contentdeps.Scheduler
}

func (d *digestSource) GetCurrentState(ctx context.Context) (*journeyentities.State, error) {
	return d.tracker.GetCurrentState(ctx)
}

func (d *digestSource) GetPublishedBeers(ctx context.Context, code string) []contententities.Beer {
	return d.scheduler.GetPublishedBeers(ctx, code)
}

func NewDigestSourceFx(tracker journeydeps.Tracker, scheduler contentdeps.Scheduler) deps.DigestSource {
	return &digestSource{tracker: tracker, scheduler: scheduler}
}

// NewDispatcherFx creates the dispatcher use case for fx DI
func NewDispatcherFx(
	repo deps.SubscriberRepository,
	sender deps.EmailSender,
	digest deps.DigestSource,
	cfg *config.EmailConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.Dispatcher {
	return business.NewDispatcher(repo, sender, digest, cfg, m, logger)
}

func registerRoutes(srv *server.Server, router *newsletterhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
