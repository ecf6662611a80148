package core

import "testing"

func TestSlugTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Blade Runner", "blade-runner"},
		{"The Godfather: Part II", "the-godfather-part-ii"},
		{"Mad Max: Fury Road", "mad-max-fury-road"},
		{"WALL-E", "wall-e"},
		{"  Spaced   Out  ", "spaced-out"},
		{"2001: A Space Odyssey", "2001-a-space-odyssey"},
		{"Amélie", "amlie"}, // 非 ASCII 字符丢弃，与历史抓取数据的 slug 规则一致
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := SlugTitle(tt.title); got != tt.want {
			t.Errorf("SlugTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestTitleKey(t *testing.T) {
	tests := []struct {
		title string
		year  int
		want  string
	}{
		{"Blade Runner", 1982, "blade-runner-1982"},
		{"Blade Runner", 0, "blade-runner"},
		{"Blade Runner", -1, "blade-runner"},
	}
	for _, tt := range tests {
		if got := TitleKey(tt.title, tt.year); got != tt.want {
			t.Errorf("TitleKey(%q, %d) = %q, want %q", tt.title, tt.year, got, tt.want)
		}
	}
}

func TestMovieWeight(t *testing.T) {
	tests := []struct {
		name  string
		movie Movie
		want  float64
	}{
		{"loved overrides rating", Movie{Loved: true, Rated: true, Rating: 1}, 2.0},
		{"rated maps to rating/5", Movie{Rated: true, Rating: 4}, 0.8},
		{"half star", Movie{Rated: true, Rating: 2.5}, 0.5},
		{"unrated is neutral", Movie{}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.movie.Weight(); got != tt.want {
				t.Errorf("Weight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovieDecade(t *testing.T) {
	m := Movie{Year: 1994}
	if got := m.Decade(); got != 1990 {
		t.Errorf("Decade() = %d, want 1990", got)
	}
	m.Year = 2000
	if got := m.Decade(); got != 2000 {
		t.Errorf("Decade() = %d, want 2000", got)
	}
}
