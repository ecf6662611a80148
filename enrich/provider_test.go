package enrich

import (
	"context"
	"testing"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/store"
)

func TestFeaturesApplyFillOnly(t *testing.T) {
	f := Features{
		Vector: map[string]float64{"editing_tempo": 4},
		Themes: []string{"memory"},
	}

	m := core.Movie{Title: "X"}
	f.Apply(&m)
	if m.Vector == nil || !m.Vector.Has(core.EditingTempo) {
		t.Error("vector not applied to empty movie")
	}
	if len(m.Themes) != 1 {
		t.Error("themes not applied to empty movie")
	}

	// 已有的向量/主题不被覆盖
	existing := core.VectorFromMap(map[string]float64{"moral_complexity": 6})
	m = core.Movie{Title: "X", Vector: existing, Themes: []string{"identity"}}
	f.Apply(&m)
	if m.Vector != existing || m.Themes[0] != "identity" {
		t.Error("Apply must not overwrite existing features")
	}
}

func TestMemoryProvider(t *testing.T) {
	p := MemoryProvider{
		"stalker-1979": {Themes: []string{"faith"}},
	}
	got, err := p.MovieFeatures(context.Background(), []string{"stalker-1979", "missing"})
	if err != nil {
		t.Fatalf("MovieFeatures() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d features, want 1 (missing keys absent, not errors)", len(got))
	}
}

func TestStoreProvider(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	s.Set(ctx, "features:stalker-1979", []byte(`{"vector":{"editing_tempo":2},"themes":["faith"]}`))
	s.Set(ctx, "features:broken", []byte(`{not json`))

	p := &StoreProvider{Store: s, KeyPrefix: "features:"}
	got, err := p.MovieFeatures(ctx, []string{"stalker-1979", "broken", "missing"})
	if err != nil {
		t.Fatalf("MovieFeatures() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d features, want 1 (bad docs skipped)", len(got))
	}
	if got["stalker-1979"].Vector["editing_tempo"] != 2 {
		t.Errorf("features = %+v", got["stalker-1979"])
	}
}

func TestEnrichMovies(t *testing.T) {
	p := MemoryProvider{
		"stalker-1979": {Vector: map[string]float64{"editing_tempo": 2}, Themes: []string{"faith"}},
	}

	movies := []core.Movie{
		{Title: "Stalker", Year: 1979},
		{Title: "Unknown", Year: 2001},
	}
	if err := EnrichMovies(context.Background(), p, movies); err != nil {
		t.Fatalf("EnrichMovies() error = %v", err)
	}

	if movies[0].Vector == nil || len(movies[0].Themes) != 1 {
		t.Errorf("first movie not enriched: %+v", movies[0])
	}
	if movies[1].Vector != nil {
		t.Error("unknown movie should stay bare")
	}

	// provider 为 nil 时是合法的 no-op
	if err := EnrichMovies(context.Background(), nil, movies); err != nil {
		t.Errorf("nil provider should be a no-op, got %v", err)
	}
}
