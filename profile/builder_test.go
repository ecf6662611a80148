package profile

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/rushteam/tastekit/core"
)

func vec(m map[string]float64) *core.Vector {
	return core.VectorFromMap(m)
}

func TestBuildWeightedMean(t *testing.T) {
	// A: Loved → 权重 2.0；B: 4 星 → 权重 0.8
	movies := []core.Movie{
		{Title: "A", Loved: true, Rated: true, Rating: 5,
			Vector: vec(map[string]float64{"editing_tempo": 7, "moral_complexity": 2})},
		{Title: "B", Rated: true, Rating: 4,
			Vector: vec(map[string]float64{"editing_tempo": 3, "silence_as_tool": 5})},
	}

	fp := Build(movies)

	// editing_tempo: (2.0*7 + 0.8*3) / 2.8 = 5.857...
	got, ok := fp.Dimensions.Get(core.EditingTempo)
	if !ok || math.Abs(got-5.857142857) > 1e-9 {
		t.Errorf("editing_tempo = %v, want 5.857142857", got)
	}

	// 稀疏维度只对定义了它的影片归一
	got, ok = fp.Dimensions.Get(core.MoralComplexity)
	if !ok || got != 2 {
		t.Errorf("moral_complexity = %v, want 2 (only movie A defines it)", got)
	}
	got, ok = fp.Dimensions.Get(core.SilenceAsTool)
	if !ok || got != 5 {
		t.Errorf("silence_as_tool = %v, want 5 (only movie B defines it)", got)
	}

	// AvgRating 非加权
	if math.Abs(fp.AvgRating-4.5) > 1e-9 {
		t.Errorf("AvgRating = %v, want 4.5", fp.AvgRating)
	}
	if fp.LovedCount != 1 {
		t.Errorf("LovedCount = %d, want 1", fp.LovedCount)
	}
}

func TestBuildThemesAccumulate(t *testing.T) {
	movies := []core.Movie{
		{Title: "A", Loved: true, Themes: []string{"memory", "identity"}},
		{Title: "B", Rated: true, Rating: 2.5, Themes: []string{"memory"}},
	}
	fp := Build(movies)

	if got := fp.Themes["memory"]; math.Abs(got-2.5) > 1e-9 {
		t.Errorf("memory weight = %v, want 2.5 (2.0 + 0.5)", got)
	}
	if got := fp.Themes["identity"]; got != 2.0 {
		t.Errorf("identity weight = %v, want 2.0", got)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	fp := Build(nil)
	if fp == nil {
		t.Fatal("Build(nil) should return an empty fingerprint, not nil")
	}
	if fp.Dimensions.Len() != 0 || len(fp.Themes) != 0 || fp.AvgRating != 0 || fp.LovedCount != 0 {
		t.Errorf("empty input should give an all-zero fingerprint: %+v", fp)
	}
}

func TestBuildDeterministic(t *testing.T) {
	movies := []core.Movie{
		{Title: "A", Loved: true, Themes: []string{"memory"},
			Vector: vec(map[string]float64{"editing_tempo": 6})},
		{Title: "B", Rated: true, Rating: 3, Themes: []string{"faith"},
			Vector: vec(map[string]float64{"editing_tempo": 2, "hope_quotient": 4})},
	}
	a, b := Build(movies), Build(movies)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	movies := []core.Movie{
		{Title: "A", Year: 2024, Rated: true, Rating: 5, Genres: []string{"Drama", "Crime"}, Director: "Nolan"},
		{Title: "B", Year: 1995, Rated: true, Rating: 4, Genres: []string{"Drama"}, Director: "Nolan"},
		{Title: "C", Year: 1990, Rated: true, Rating: 3, Genres: []string{"Action"}, Director: "Mann"},
	}

	s := Summarize(movies, now)

	if s.RatedCount != 3 {
		t.Errorf("RatedCount = %d, want 3", s.RatedCount)
	}
	if math.Abs(s.AvgRating-4.0) > 1e-9 {
		t.Errorf("AvgRating = %v, want 4.0", s.AvgRating)
	}
	// Drama(2) > Action/Crime(1，同计数按名称升序)
	want := []string{"Drama", "Action", "Crime"}
	if !reflect.DeepEqual(s.TopGenres, want) {
		t.Errorf("TopGenres = %v, want %v", s.TopGenres, want)
	}
	// 单片导演没有信号
	if !reflect.DeepEqual(s.FavoriteDirectors, []string{"Nolan"}) {
		t.Errorf("FavoriteDirectors = %v, want [Nolan]", s.FavoriteDirectors)
	}
	if !s.HasRecentActivity {
		t.Error("2024 release within 3 years of 2026 should count as recent")
	}
	if math.Abs(s.AvgYear-(2024+1995+1990)/3.0) > 1e-9 {
		t.Errorf("AvgYear = %v", s.AvgYear)
	}
}

func TestSummarizeNoRecentActivity(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s := Summarize([]core.Movie{{Title: "Old", Year: 1970, Rated: true, Rating: 4}}, now)
	if s.HasRecentActivity {
		t.Error("1970 release should not count as recent activity")
	}
}
