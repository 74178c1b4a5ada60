package business

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/brewquest/config"
	contententities "github.com/Conte777/brewquest/internal/domain/content/entities"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	"github.com/Conte777/brewquest/internal/domain/newsletter/entities"
	newslettererrors "github.com/Conte777/brewquest/internal/domain/newsletter/errors"
	"github.com/Conte777/brewquest/internal/infrastructure/email"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
)

// mockRepository is a mock implementation of deps.SubscriberRepository
type mockRepository struct {
	listActiveFunc func(ctx context.Context, pref entities.Preference) ([]entities.Subscriber, error)
	getByEmailFunc func(ctx context.Context, email string) (*entities.Subscriber, error)
	createFunc     func(ctx context.Context, s *entities.Subscriber) error
	reactivateFunc func(ctx context.Context, id, token uuid.UUID, at time.Time) error
	deactivateFunc func(ctx context.Context, token uuid.UUID, at time.Time) (bool, error)
}

func (m *mockRepository) ListActive(ctx context.Context, pref entities.Preference) ([]entities.Subscriber, error) {
	return m.listActiveFunc(ctx, pref)
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*entities.Subscriber, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockRepository) Create(ctx context.Context, s *entities.Subscriber) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, s)
	}
	return nil
}

func (m *mockRepository) Reactivate(ctx context.Context, id uuid.UUID, token uuid.UUID, at time.Time) error {
	return m.reactivateFunc(ctx, id, token, at)
}

func (m *mockRepository) DeactivateByToken(ctx context.Context, token uuid.UUID, at time.Time) (bool, error) {
	return m.deactivateFunc(ctx, token, at)
}

// mockSender records messages and fails for addresses listed in failFor
type mockSender struct {
	mu         sync.Mutex
	sent       []email.Message
	failFor    map[string]bool
	configured bool
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) (*email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[msg.To] {
		return nil, errors.New("provider rejected")
	}
	m.sent = append(m.sent, msg)
	return &email.SendResult{ID: "msg-" + msg.To}, nil
}

func (m *mockSender) Configured() bool {
	return m.configured
}

type mockDigest struct {
	state *journeyentities.State
	beers []contententities.Beer
}

func (m *mockDigest) GetCurrentState(context.Context) (*journeyentities.State, error) {
	return m.state, nil
}

func (m *mockDigest) GetPublishedBeers(context.Context, string) []contententities.Beer {
	return m.beers
}

func subscribers(emails ...string) []entities.Subscriber {
	out := make([]entities.Subscriber, len(emails))
	for i, e := range emails {
		out[i] = entities.Subscriber{ID: uuid.New(), Email: e, IsActive: true, UnsubscribeToken: uuid.New()}
	}
	return out
}

func newDispatcher(repo *mockRepository, sender *mockSender, digest *mockDigest) *Dispatcher {
	cfg := &config.EmailConfig{SiteURL: "https://brewquest.test", Concurrency: 3}
	return NewDispatcher(repo, sender, digest, cfg, metrics.GetDefaultMetrics(), zerolog.Nop())
}

func TestDispatcher_SendStateTransitionEmail(t *testing.T) {
	var gotPref entities.Preference
	repo := &mockRepository{
		listActiveFunc: func(_ context.Context, pref entities.Preference) ([]entities.Subscriber, error) {
			gotPref = pref
			return subscribers("a@test.com", "b@test.com", "c@test.com", "d@test.com"), nil
		},
	}
	sender := &mockSender{configured: true, failFor: map[string]bool{"c@test.com": true}}
	d := newDispatcher(repo, sender, &mockDigest{})

	result, err := d.SendStateTransitionEmail(context.Background(), "Arizona", "Arkansas")
	if err != nil {
		t.Fatalf("SendStateTransitionEmail: %v", err)
	}

	if gotPref != entities.PreferenceStateUpdates {
		t.Errorf("preference = %s, want state_updates", gotPref)
	}
	if result != (entities.DispatchResult{Successful: 3, Failed: 1, Total: 4}) {
		t.Errorf("result = %+v", result)
	}

	msg := sender.sent[0]
	if !strings.Contains(msg.Subject, "Arkansas") || !strings.Contains(msg.Text, "Arizona") {
		t.Errorf("unexpected message: %+v", msg)
	}
	if !strings.Contains(msg.Headers["List-Unsubscribe"], "/api/newsletter/unsubscribe?token=") {
		t.Errorf("missing unsubscribe header: %v", msg.Headers)
	}
	if !strings.HasPrefix(msg.IdempotencyKey, "state_transition/Arkansas/") {
		t.Errorf("idempotency key = %q", msg.IdempotencyKey)
	}
}

func TestDispatcher_NotConfigured(t *testing.T) {
	repo := &mockRepository{
		listActiveFunc: func(context.Context, entities.Preference) ([]entities.Subscriber, error) {
			t.Error("subscribers must not be loaded without a sender")
			return nil, nil
		},
	}
	d := newDispatcher(repo, &mockSender{}, &mockDigest{})

	if _, err := d.SendStateTransitionEmail(context.Background(), "A", "B"); !errors.Is(err, newslettererrors.ErrEmailNotConfigured) {
		t.Fatalf("err = %v, want ErrEmailNotConfigured", err)
	}
}

func TestDispatcher_CancelledContextCountsFailures(t *testing.T) {
	repo := &mockRepository{
		listActiveFunc: func(context.Context, entities.Preference) ([]entities.Subscriber, error) {
			return subscribers("a@test.com", "b@test.com"), nil
		},
	}
	sender := &mockSender{configured: true}
	d := newDispatcher(repo, sender, &mockDigest{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := d.SendStateTransitionEmail(ctx, "A", "B")
	if err != nil {
		t.Fatalf("dispatch error must not surface: %v", err)
	}
	if result.Failed != 2 || result.Successful != 0 || result.Total != 2 {
		t.Errorf("result = %+v", result)
	}
}

func TestDispatcher_SendWeeklyDigest(t *testing.T) {
	var gotPref entities.Preference
	repo := &mockRepository{
		listActiveFunc: func(_ context.Context, pref entities.Preference) ([]entities.Subscriber, error) {
			gotPref = pref
			return subscribers("a@test.com"), nil
		},
	}
	sender := &mockSender{configured: true}
	digest := &mockDigest{
		state: &journeyentities.State{Code: "AZ", Name: "Arizona", Status: journeyentities.StatusCurrent},
		beers: []contententities.Beer{{DayOfWeek: 1, BeerName: "Kilt Lifter", Brewery: "Four Peaks"}},
	}
	d := newDispatcher(repo, sender, digest)
	d.now = func() time.Time { return time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC) }

	result, err := d.SendWeeklyDigest(context.Background())
	if err != nil {
		t.Fatalf("SendWeeklyDigest: %v", err)
	}
	if gotPref != entities.PreferenceWeeklyDigest || result.Successful != 1 {
		t.Errorf("pref = %s, result = %+v", gotPref, result)
	}
	if !strings.Contains(sender.sent[0].Text, "Kilt Lifter") {
		t.Errorf("digest body missing beer:\n%s", sender.sent[0].Text)
	}
	if !strings.HasPrefix(sender.sent[0].IdempotencyKey, "weekly_digest/AZ-2026-03-06/") {
		t.Errorf("idempotency key = %q", sender.sent[0].IdempotencyKey)
	}
}

func TestDispatcher_SendWeeklyDigest_NoCurrentState(t *testing.T) {
	repo := &mockRepository{
		listActiveFunc: func(context.Context, entities.Preference) ([]entities.Subscriber, error) {
			t.Error("no mail expected without a current state")
			return nil, nil
		},
	}
	d := newDispatcher(repo, &mockSender{configured: true}, &mockDigest{})

	result, err := d.SendWeeklyDigest(context.Background())
	if err != nil || result.Total != 0 {
		t.Errorf("got %+v, %v", result, err)
	}
}

func TestDispatcher_Subscribe(t *testing.T) {
	t.Run("creates new subscriber", func(t *testing.T) {
		var created *entities.Subscriber
		repo := &mockRepository{
			createFunc: func(_ context.Context, s *entities.Subscriber) error { created = s; return nil },
		}
		d := newDispatcher(repo, &mockSender{}, &mockDigest{})

		sub, err := d.Subscribe(context.Background(), "  Hop.Head@Example.COM ")
		if err != nil {
			t.Fatalf("Subscribe: %v", err)
		}
		if created == nil || sub.Email != "hop.head@example.com" || !sub.IsActive || sub.UnsubscribeToken == uuid.Nil {
			t.Errorf("unexpected subscriber: %+v", sub)
		}
	})

	t.Run("active subscriber is unchanged", func(t *testing.T) {
		existing := &entities.Subscriber{ID: uuid.New(), Email: "a@test.com", IsActive: true}
		repo := &mockRepository{
			getByEmailFunc: func(context.Context, string) (*entities.Subscriber, error) { return existing, nil },
			createFunc: func(context.Context, *entities.Subscriber) error {
				t.Error("create must not be called")
				return nil
			},
		}
		d := newDispatcher(repo, &mockSender{}, &mockDigest{})

		sub, err := d.Subscribe(context.Background(), "a@test.com")
		if err != nil || sub != existing {
			t.Errorf("got %+v, %v", sub, err)
		}
	})

	t.Run("lapsed subscriber is reactivated", func(t *testing.T) {
		oldToken := uuid.New()
		existing := &entities.Subscriber{ID: uuid.New(), Email: "a@test.com", UnsubscribeToken: oldToken}
		var reactivated bool
		repo := &mockRepository{
			getByEmailFunc: func(context.Context, string) (*entities.Subscriber, error) { return existing, nil },
			reactivateFunc: func(_ context.Context, id, token uuid.UUID, _ time.Time) error {
				reactivated = id == existing.ID && token != oldToken
				return nil
			},
		}
		d := newDispatcher(repo, &mockSender{}, &mockDigest{})

		sub, err := d.Subscribe(context.Background(), "a@test.com")
		if err != nil || !reactivated || !sub.IsActive {
			t.Errorf("got %+v, %v, reactivated=%v", sub, err, reactivated)
		}
	})

	t.Run("invalid address", func(t *testing.T) {
		d := newDispatcher(&mockRepository{}, &mockSender{}, &mockDigest{})
		for _, address := range []string{"", "not-an-email", "Bob <bob@test.com>"} {
			if _, err := d.Subscribe(context.Background(), address); !errors.Is(err, newslettererrors.ErrInvalidEmail) {
				t.Errorf("%q: err = %v, want ErrInvalidEmail", address, err)
			}
		}
	})
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	token := uuid.New()
	repo := &mockRepository{
		deactivateFunc: func(_ context.Context, got uuid.UUID, _ time.Time) (bool, error) {
			return got == token, nil
		},
	}
	d := newDispatcher(repo, &mockSender{}, &mockDigest{})

	if err := d.Unsubscribe(context.Background(), token.String()); err != nil {
		t.Errorf("Unsubscribe: %v", err)
	}
	if err := d.Unsubscribe(context.Background(), uuid.NewString()); !errors.Is(err, newslettererrors.ErrSubscriberNotFound) {
		t.Errorf("unknown token err = %v, want ErrSubscriberNotFound", err)
	}
	if err := d.Unsubscribe(context.Background(), "garbage"); !errors.Is(err, newslettererrors.ErrInvalidToken) {
		t.Errorf("bad token err = %v, want ErrInvalidToken", err)
	}
}
