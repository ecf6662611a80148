package builders

import (
	"testing"

	"github.com/rushteam/tastekit/config"
	"github.com/rushteam/tastekit/filter"
	"github.com/rushteam/tastekit/pipeline"
	"github.com/rushteam/tastekit/rank"
	"github.com/rushteam/tastekit/rerank"
	"github.com/rushteam/tastekit/sample"
)

func TestInitRegistersBuiltins(t *testing.T) {
	supported := config.SupportedTypes()
	want := []string{"filter", "filter.seen", "rerank.topn", "sample.round", "score.taste"}
	for _, typ := range want {
		found := false
		for _, s := range supported {
			if s == typ {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("type %q not registered (have %v)", typ, supported)
		}
	}
}

func TestBuildTopNNode(t *testing.T) {
	node, err := BuildTopNNode(map[string]interface{}{"n": 5, "min_score": 0.3})
	if err != nil {
		t.Fatalf("BuildTopNNode() error = %v", err)
	}
	topn, ok := node.(*rerank.TopNNode)
	if !ok || topn.N != 5 || topn.MinScore != 0.3 {
		t.Errorf("node = %+v", node)
	}
}

func TestBuildTasteNode(t *testing.T) {
	node, err := BuildTasteNode(map[string]interface{}{"chunks": 8})
	if err != nil {
		t.Fatalf("BuildTasteNode() error = %v", err)
	}
	taste, ok := node.(*rank.TasteNode)
	if !ok || taste.Chunks != 8 {
		t.Errorf("node = %+v", node)
	}
}

func TestBuildSampleNode(t *testing.T) {
	node, err := BuildSampleNode(map[string]interface{}{"rounds": 4, "show": 8, "pick": 2, "jitter": 5.0})
	if err != nil {
		t.Fatalf("BuildSampleNode() error = %v", err)
	}
	sn, ok := node.(*sample.Node)
	if !ok || sn.Sampler.Rounds != 4 || sn.Sampler.Show != 8 || sn.Sampler.Pick != 2 || sn.Sampler.Jitter != 5.0 {
		t.Errorf("node = %+v", sn.Sampler)
	}
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]interface{}{
		"filters": []interface{}{
			map[string]interface{}{"type": "seen", "keys": []interface{}{"blade-runner-1982"}},
		},
	})
	if err != nil {
		t.Fatalf("BuildFilterNode() error = %v", err)
	}
	fn, ok := node.(*filter.FilterNode)
	if !ok || len(fn.Filters) != 1 {
		t.Fatalf("node = %+v", node)
	}
	seen, ok := fn.Filters[0].(*filter.SeenFilter)
	if !ok || !seen.Keys["blade-runner-1982"] {
		t.Errorf("seen filter = %+v", fn.Filters[0])
	}

	if _, err := BuildFilterNode(map[string]interface{}{"filters": []interface{}{
		map[string]interface{}{"type": "bogus"},
	}}); err == nil {
		t.Error("unknown filter type should fail")
	}
	if _, err := BuildFilterNode(map[string]interface{}{}); err == nil {
		t.Error("missing filters list should fail")
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "score.taste"}, {Type: "rerank.topn"}}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Errorf("ValidatePipelineConfig() error = %v", err)
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, pipeline.NodeConfig{Type: "rank.unknown"})
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("expected error for unregistered node type")
	}
}

func TestFactoryBuildsFromConfig(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter.seen", Config: map[string]interface{}{"keys": []interface{}{"heat-1995"}}},
		{Type: "score.taste", Config: map[string]interface{}{}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 10}},
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Errorf("pipeline has %d nodes, want 3", len(p.Nodes))
	}
}
