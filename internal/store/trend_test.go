package store

import (
	"testing"
	"time"

	"worldpulse/internal/models"
)

func TestTrendStoreReplace(t *testing.T) {
	s := NewTrendStore(SeedTrends(time.Now()))
	before := s.UpdatedAt()

	fresh := []models.TrendingTopic{
		{ID: "trend-1-0", Topic: "Port Strike Spreads", Category: models.CategoryBusiness, Change: "+40%"},
	}
	if !s.Replace(fresh) {
		t.Fatal("Replace with non-empty list returned false")
	}
	got := s.List()
	if len(got) != 1 || got[0].Topic != "Port Strike Spreads" {
		t.Errorf("List after Replace: %+v", got)
	}
	if s.UpdatedAt().Before(before) {
		t.Error("UpdatedAt moved backwards")
	}
}

func TestTrendStoreReplaceEmptyKeepsPrevious(t *testing.T) {
	s := NewTrendStore(SeedTrends(time.Now()))

	if s.Replace(nil) {
		t.Error("Replace(nil) reported a swap")
	}
	if s.Replace([]models.TrendingTopic{}) {
		t.Error("Replace(empty) reported a swap")
	}
	if got := len(s.List()); got != 6 {
		t.Errorf("List length: got %d, want 6", got)
	}
}

func TestTrendStoreListIsCopy(t *testing.T) {
	s := NewTrendStore(SeedTrends(time.Now()))
	list := s.List()
	list[0].Topic = "changed"
	if s.List()[0].Topic == "changed" {
		t.Error("store mutated through List copy")
	}
}

func TestTrendStoreEmptyListNotNil(t *testing.T) {
	s := NewTrendStore(nil)
	if s.List() == nil {
		t.Error("List returned nil for empty store")
	}
}
