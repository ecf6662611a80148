package filter

import (
	"context"
	"testing"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/store"
)

func TestSeenFilterKeys(t *testing.T) {
	f := &SeenFilter{Keys: map[string]bool{"blade-runner-1982": true, "stalker": true}}

	tests := []struct {
		name  string
		movie core.Movie
		want  bool
	}{
		{"hits slug-year form", core.Movie{Title: "Blade Runner", Year: 1982}, true},
		{"hits bare slug form", core.Movie{Title: "Stalker", Year: 1979}, true},
		{"miss", core.Movie{Title: "Heat", Year: 1995}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(context.Background(), nil, core.NewItem(&tt.movie))
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%q) = %v, want %v", tt.movie.Title, got, tt.want)
			}
		})
	}
}

func TestSeenFilterViewerExclusions(t *testing.T) {
	f := &SeenFilter{}
	vctx := &core.ViewerContext{Exclusions: map[string]bool{"heat-1995": true}}

	got, err := f.ShouldFilter(context.Background(), vctx, core.NewItem(&core.Movie{Title: "Heat", Year: 1995}))
	if err != nil || !got {
		t.Errorf("ShouldFilter via vctx.Exclusions = %v, %v; want true, nil", got, err)
	}
}

func TestSeenFilterStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Set(ctx, "exclusions:shared", []byte(`["heat-1995"]`)); err != nil {
		t.Fatal(err)
	}

	f := &SeenFilter{Store: s, StoreKey: "exclusions:shared"}
	got, err := f.ShouldFilter(ctx, nil, core.NewItem(&core.Movie{Title: "Heat", Year: 1995}))
	if err != nil || !got {
		t.Errorf("store-backed ShouldFilter = %v, %v; want true, nil", got, err)
	}

	// 存储无此 key 时退化为保留
	f = &SeenFilter{Store: s, StoreKey: "exclusions:missing"}
	got, err = f.ShouldFilter(ctx, nil, core.NewItem(&core.Movie{Title: "Heat", Year: 1995}))
	if err != nil || got {
		t.Errorf("missing store key should keep the item, got %v, %v", got, err)
	}
}

func TestFilterNode(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&SeenFilter{Keys: map[string]bool{"stalker": true}},
	}}

	items := []*core.Item{
		core.NewItem(&core.Movie{Title: "Stalker"}),
		core.NewItem(&core.Movie{Title: "Heat", Year: 1995}),
	}

	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].Movie.Title != "Heat" {
		t.Errorf("expected only Heat to survive, got %d items", len(out))
	}

	// 被过滤的 item 带上原因标签
	if lbl, ok := items[0].Labels["filtered"]; !ok || lbl.Source != "filter.seen" {
		t.Errorf("filtered item should carry a filtered label: %v", items[0].Labels)
	}
}

func TestFilterNodeNilItem(t *testing.T) {
	node := &FilterNode{Filters: []Filter{&SeenFilter{}}}
	out, err := node.Process(context.Background(), nil, []*core.Item{nil, core.NewItem(&core.Movie{Title: "X"})})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("nil items should be dropped, got %d", len(out))
	}
}
