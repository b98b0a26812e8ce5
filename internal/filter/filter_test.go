package filter

import (
	"net/url"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"worldpulse/internal/models"
)

func fixture() []models.Article {
	return []models.Article{
		{ID: "1", Title: "Arctic Shipping Lanes Open", Excerpt: "Ice retreat", Category: models.CategoryWorld, Tags: []string{"Climate", "Trade"}},
		{ID: "2", Title: "Chip Tariffs Bite", Excerpt: "Semiconductor costs rise", Category: models.CategoryBusiness, Tags: []string{"Trade"}, Featured: true},
		{ID: "3", Title: "Gene Therapy Trial", Excerpt: "CRISPR restores sight", Category: models.CategoryHealth, Tags: []string{"Biotech"}},
		{ID: "4", Title: "Stadium Goes Solar", Excerpt: "Zero emission venue", Category: models.CategorySports, Tags: []string{"climate"}},
	}
}

func ids(articles []models.Article) []string {
	out := []string{}
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{name: "no filters", query: Query{}, want: []string{"1", "2", "3", "4"}},
		{name: "category all", query: Query{Category: "All"}, want: []string{"1", "2", "3", "4"}},
		{name: "category", query: Query{Category: "Business"}, want: []string{"2"}},
		{name: "category is exact", query: Query{Category: "business"}, want: []string{}},
		{name: "tag case-insensitive", query: Query{Tag: "CLIMATE"}, want: []string{"1", "4"}},
		{name: "tag is exact not substring", query: Query{Tag: "Clim"}, want: []string{}},
		{name: "search title", query: Query{Search: "arctic"}, want: []string{"1"}},
		{name: "search excerpt", query: Query{Search: "crispr"}, want: []string{"3"}},
		{name: "search tag substring", query: Query{Search: "bio"}, want: []string{"3"}},
		{name: "search category", query: Query{Search: "sports"}, want: []string{"4"}},
		{name: "search wins over tag and category", query: Query{Search: "chip", Tag: "Climate", Category: "Health"}, want: []string{"2"}},
		{name: "tag wins over category", query: Query{Tag: "Trade", Category: "Health"}, want: []string{"1", "2"}},
		{name: "whitespace search ignored", query: Query{Search: "   ", Category: "Health"}, want: []string{"3"}},
		{name: "no match", query: Query{Search: "volcano"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixture(), tt.query)
			if got == nil {
				t.Fatal("Apply returned nil")
			}
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Apply(%+v) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := fixture()
	snapshot := slices.Clone(in)
	out := Apply(in, Query{})
	out[0].Title = "changed"
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestSplitHero(t *testing.T) {
	hero, rest := SplitHero(fixture())
	if hero == nil || hero.ID != "2" {
		t.Fatalf("hero: got %+v, want featured article 2", hero)
	}
	if diff := cmp.Diff([]string{"1", "3", "4"}, ids(rest)); diff != "" {
		t.Errorf("rest mismatch (-want +got):\n%s", diff)
	}

	noFeatured := fixture()
	noFeatured[1].Featured = false
	hero, rest = SplitHero(noFeatured)
	if hero == nil || hero.ID != "1" {
		t.Errorf("hero without featured: got %+v, want first article", hero)
	}
	if len(rest) != 3 {
		t.Errorf("rest length: got %d, want 3", len(rest))
	}

	hero, rest = SplitHero(nil)
	if hero != nil || rest == nil || len(rest) != 0 {
		t.Errorf("empty input: hero=%v rest=%v", hero, rest)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		wantHero string
		wantIDs  []string
		wantHead string
	}{
		{name: "front page", query: Query{Category: "All"}, wantHero: "2", wantIDs: []string{"1", "3", "4"}, wantHead: "Latest Reports"},
		{name: "category desk", query: Query{Category: "Health"}, wantHero: "3", wantIDs: []string{}, wantHead: "Health Desk"},
		{name: "search has no hero", query: Query{Search: "trade"}, wantIDs: []string{"1", "2"}, wantHead: "Search Results: trade"},
		{name: "tag has no hero", query: Query{Tag: "Climate"}, wantIDs: []string{"1", "4"}, wantHead: "Dispatch: Climate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layout(fixture(), tt.query)
			if l.Heading != tt.wantHead {
				t.Errorf("heading: got %q, want %q", l.Heading, tt.wantHead)
			}
			if tt.wantHero == "" {
				if l.ShowHero || l.Hero != nil {
					t.Errorf("unexpected hero %+v", l.Hero)
				}
			} else if !l.ShowHero || l.Hero == nil || l.Hero.ID != tt.wantHero {
				t.Errorf("hero: got %+v, want %s", l.Hero, tt.wantHero)
			}
			if diff := cmp.Diff(tt.wantIDs, ids(l.Articles)); diff != "" {
				t.Errorf("articles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLayoutEmpty(t *testing.T) {
	if !Layout(fixture(), Query{Search: "volcano"}).Empty() {
		t.Error("expected empty listing for unmatched search")
	}
	if !Layout(nil, Query{}).Empty() {
		t.Error("expected empty listing for empty catalogue")
	}
	if Layout(fixture(), Query{}).Empty() {
		t.Error("front page should not be empty")
	}
}

func TestQueryFromValues(t *testing.T) {
	q := QueryFromValues(url.Values{"q": {"  fusion "}, "tag": {"Energy"}})
	want := Query{Search: "fusion", Tag: "Energy", Category: "All"}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("QueryFromValues mismatch (-want +got):\n%s", diff)
	}
	if got := (Query{Category: "All"}).Values().Encode(); got != "" {
		t.Errorf("default query encodes to %q", got)
	}
	if got := (Query{Category: "Science"}).Values().Encode(); got != "cat=Science" {
		t.Errorf("category query encodes to %q", got)
	}
}
