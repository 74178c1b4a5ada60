package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Conte777/brewquest/internal/domain/approval/entities"
	approvalerrors "github.com/Conte777/brewquest/internal/domain/approval/errors"
	"github.com/Conte777/brewquest/internal/testutil"
)

func TestRepository_ReviewOnlyPending(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &entities.Approval{})
	repo := NewRepository(db)
	ctx := context.Background()

	a := &entities.Approval{ContentType: entities.ContentTypeBeerReview, ContentRef: "AZ/1", Status: entities.StatusPending}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("id not assigned")
	}

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ok, err := repo.Review(ctx, a.ID, entities.StatusApproved, "sam", "", at)
	if err != nil || !ok {
		t.Fatalf("first review = %v, %v; want true", ok, err)
	}

	ok, err = repo.Review(ctx, a.ID, entities.StatusRejected, "alex", "too late", at)
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if ok {
		t.Error("second review should not apply")
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != entities.StatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if got.Reviewer == nil || *got.Reviewer != "sam" {
		t.Errorf("reviewer = %v, want sam", got.Reviewer)
	}
	if got.ReviewedAt == nil || !got.ReviewedAt.Equal(at) {
		t.Errorf("reviewed_at = %v, want %v", got.ReviewedAt, at)
	}
}

func TestRepository_ListByStatus(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &entities.Approval{})
	repo := NewRepository(db)
	ctx := context.Background()

	for _, ref := range []string{"AZ/1", "AZ/2", "AZ/3"} {
		a := &entities.Approval{ContentType: entities.ContentTypeBeerReview, ContentRef: ref, Status: entities.StatusPending}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("create %s: %v", ref, err)
		}
	}
	if _, err := repo.Review(ctx, 2, entities.StatusRejected, "sam", "off-topic", time.Now()); err != nil {
		t.Fatalf("review: %v", err)
	}

	pending, err := repo.List(ctx, entities.StatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 || pending[0].ContentRef != "AZ/1" || pending[1].ContentRef != "AZ/3" {
		t.Errorf("pending = %+v", pending)
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &entities.Approval{})
	repo := NewRepository(db)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, approvalerrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
