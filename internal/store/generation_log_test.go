package store

import (
	"errors"
	"testing"

	"worldpulse/internal/models"
)

func TestLogStoreLifecycle(t *testing.T) {
	s := NewLogStore()

	first := s.Create("Arctic shipping", models.CategoryWorld, "gemini-3-pro-preview")
	second := s.Create("Chip tariffs", models.CategoryBusiness, "gemini-3-pro-preview")

	if first.Status != models.GenerationPending {
		t.Errorf("new log status: got %q, want pending", first.Status)
	}
	if s.Pending() != 2 {
		t.Errorf("Pending: got %d, want 2", s.Pending())
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := s.Settle(first.ID, models.GenerationSuccess, "arctic-shipping"); err != nil {
		t.Fatalf("Settle success: %v", err)
	}
	if err := s.Settle(second.ID, models.GenerationFailed, "draft unavailable"); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending after settle: got %d, want 0", s.Pending())
	}

	list = s.List()
	if list[1].ArticleSlug != "arctic-shipping" || list[1].Error != "" {
		t.Errorf("success log: %+v", list[1])
	}
	if list[0].Error != "draft unavailable" || list[0].ArticleSlug != "" {
		t.Errorf("failed log: %+v", list[0])
	}
}

func TestLogStoreSettleErrors(t *testing.T) {
	s := NewLogStore()
	entry := s.Create("Topic", models.CategoryHealth, "model")

	tests := []struct {
		name    string
		id      string
		status  models.GenerationStatus
		wantErr error
	}{
		{name: "unknown id", id: "missing", status: models.GenerationSuccess, wantErr: ErrLogNotFound},
		{name: "first settle", id: entry.ID, status: models.GenerationFailed, wantErr: nil},
		{name: "second settle", id: entry.ID, status: models.GenerationSuccess, wantErr: ErrAlreadySettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Settle(tt.id, tt.status, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Settle: got %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := s.List()[0].Status; got != models.GenerationFailed {
		t.Errorf("status changed after rejected settle: %q", got)
	}
}

func TestLogStoreSettleRejectsPending(t *testing.T) {
	s := NewLogStore()
	entry := s.Create("Topic", models.CategoryHealth, "model")
	if err := s.Settle(entry.ID, models.GenerationPending, ""); err == nil {
		t.Error("expected error settling to pending")
	}
}
