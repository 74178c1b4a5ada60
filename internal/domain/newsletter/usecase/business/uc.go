package business

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/domain/newsletter/deps"
	"github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	newslettererrors "github.com/Conte777/brewquest/internal/domain/newsletter/errors"
	"github.com/Conte777/brewquest/internal/domain/newsletter/templates"
	"github.com/Conte777/brewquest/internal/infrastructure/email"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// render builds the body for one subscriber
type render func(unsubscribeURL string) (string, error)

type Dispatcher struct {
	repo    deps.SubscriberRepository
	sender  deps.EmailSender
	digest  deps.DigestSource
	cfg     *config.EmailConfig
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDispatcher(
	repo deps.SubscriberRepository,
	sender deps.EmailSender,
	digest deps.DigestSource,
	cfg *config.EmailConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		repo:    repo,
		sender:  sender,
		digest:  digest,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "newsletter_dispatcher").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) SendStateTransitionEmail(ctx context.Context, completedStateName, newStateName string) (entities.DispatchResult, error) {
	subject := templates.StateTransitionSubject(completedStateName, newStateName)
	body := func(unsubscribeURL string) (string, error) {
		return templates.RenderStateTransition(templates.StateTransitionData{
			CompletedState: completedStateName,
			NewState:       newStateName,
			SiteURL:        d.cfg.SiteURL,
			UnsubscribeURL: unsubscribeURL,
		})
	}

	return d.dispatch(ctx, entities.KindStateTransition, entities.PreferenceStateUpdates, newStateName, subject, body)
}

func (d *Dispatcher) SendWeeklyDigest(ctx context.Context) (entities.DispatchResult, error) {
	state, err := d.digest.GetCurrentState(ctx)
	if err != nil {
		return entities.DispatchResult{}, err
	}
	if state == nil {
		d.logger.Info().Msg("no current state, weekly digest skipped")
		return entities.DispatchResult{}, nil
	}

	beers := d.digest.GetPublishedBeers(ctx, state.Code)
	subject := templates.WeeklyDigestSubject(state.Name)
	body := func(unsubscribeURL string) (string, error) {
		return templates.RenderWeeklyDigest(templates.WeeklyDigestData{
			State:          state.Name,
			Beers:          beers,
			SiteURL:        d.cfg.SiteURL,
			UnsubscribeURL: unsubscribeURL,
		})
	}

	// one digest per state and day of the journey
	batch := fmt.Sprintf("%s-%s", state.Code, d.now().Format("2006-01-02"))
	return d.dispatch(ctx, entities.KindWeeklyDigest, entities.PreferenceWeeklyDigest, batch, subject, body)
}

// dispatch sends one email per opted-in subscriber. Individual failures are counted, never returned.
func (d *Dispatcher) dispatch(
	ctx context.Context,
	kind entities.Kind,
	pref entities.Preference,
	batch string,
	subject string,
	body render,
) (entities.DispatchResult, error) {
	if !d.sender.Configured() {
		return entities.DispatchResult{}, newslettererrors.ErrEmailNotConfigured
	}

	subscribers, err := d.repo.ListActive(ctx, pref)
	if err != nil {
		return entities.DispatchResult{}, err
	}

	start := time.Now()
	var successful, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.cfg.Concurrency, 1))

	for _, sub := range subscribers {
		sub := sub
		g.Go(func() error {
			if err := d.sendOne(gctx, kind, batch, subject, body, sub); err != nil {
				failed.Add(1)
				d.logger.Warn().Err(err).
					Str("kind", string(kind)).
					Str("subscriber_id", sub.ID.String()).
					Msg("newsletter email failed")
				return nil
			}
			successful.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	result := entities.DispatchResult{
		Successful: int(successful.Load()),
		Failed:     int(failed.Load()),
		Total:      len(subscribers),
	}
	d.metrics.RecordDispatch(string(kind), result.Successful, result.Failed, time.Since(start).Seconds())

	d.logger.Info().
		Str("kind", string(kind)).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Int("total", result.Total).
		Msg("newsletter dispatched")

	return result, nil
}

func (d *Dispatcher) sendOne(
	ctx context.Context,
	kind entities.Kind,
	batch string,
	subject string,
	body render,
	sub entities.Subscriber,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unsubscribeURL := d.unsubscribeURL(sub.UnsubscribeToken)
	text, err := body(unsubscribeURL)
	if err != nil {
		return err
	}

	_, err = d.sender.Send(ctx, email.Message{
		To:      sub.Email,
		Subject: subject,
		Text:    text,
		Headers: map[string]string{
			"List-Unsubscribe":      "<" + unsubscribeURL + ">",
			"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
		},
		Tags:           []email.Tag{{Name: "category", Value: string(kind)}},
		IdempotencyKey: fmt.Sprintf("%s/%s/%s", kind, batch, sub.ID),
	})
	return err
}

func (d *Dispatcher) unsubscribeURL(token uuid.UUID) string {
	return fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", d.cfg.SiteURL, token)
}

// Subscribe is idempotent for active addresses and reactivates lapsed ones with a fresh token
func (d *Dispatcher) Subscribe(ctx context.Context, address string) (*entities.Subscriber, error) {
	normalized, err := NormalizeEmail(address)
	if err != nil {
		return nil, err
	}

	existing, err := d.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}

	now := d.now()
	if existing != nil {
		if existing.IsActive {
			return existing, nil
		}

		token := uuid.New()
		if err := d.repo.Reactivate(ctx, existing.ID, token, now); err != nil {
			return nil, err
		}
		existing.IsActive = true
		existing.UnsubscribeToken = token
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil

		d.logger.Info().Str("subscriber_id", existing.ID.String()).Msg("subscriber reactivated")
		return existing, nil
	}

	sub := &entities.Subscriber{
		ID:               uuid.New(),
		Email:            normalized,
		IsActive:         true,
		WeeklyDigest:     true,
		StateUpdates:     true,
		UnsubscribeToken: uuid.New(),
		SubscribedAt:     now,
	}
	if err := d.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	d.logger.Info().Str("subscriber_id", sub.ID.String()).Msg("subscriber created")
	return sub, nil
}

func (d *Dispatcher) Unsubscribe(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(strings.TrimSpace(token))
	if err != nil {
		return fmt.Errorf("%w: %v", newslettererrors.ErrInvalidToken, err)
	}

	ok, err := d.repo.DeactivateByToken(ctx, parsed, d.now())
	if err != nil {
		return err
	}
	if !ok {
		return newslettererrors.ErrSubscriberNotFound
	}

	d.logger.Info().Msg("subscriber unsubscribed")
	return nil
}

// NormalizeEmail accepts a bare address and lower-cases it
func NormalizeEmail(address string) (string, error) {
	address = strings.TrimSpace(address)
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return "", newslettererrors.ErrInvalidEmail
	}
	return strings.ToLower(parsed.Address), nil
}
