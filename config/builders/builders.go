package builders

import (
	"fmt"

	"github.com/rushteam/tastekit/config"
	"github.com/rushteam/tastekit/filter"
	"github.com/rushteam/tastekit/pipeline"
	"github.com/rushteam/tastekit/pkg/conv"
	"github.com/rushteam/tastekit/rank"
	"github.com/rushteam/tastekit/rerank"
	"github.com/rushteam/tastekit/sample"
)

func init() {
	config.Register("score.taste", BuildTasteNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("filter", BuildFilterNode)
	config.Register("filter.seen", BuildSeenFilterNode)
	config.Register("sample.round", BuildSampleNode)
}

func BuildTasteNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rank.TasteNode{
		Chunks: conv.ConfigGet(cfg, "chunks", 0),
	}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N:        conv.ConfigGet(cfg, "n", 0),
		MinScore: conv.ConfigGet(cfg, "min_score", 0.0),
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "seen":
			filters = append(filters, seenFilterFromConfig(filterMap))
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildSeenFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &filter.FilterNode{
		Filters: []filter.Filter{seenFilterFromConfig(cfg)},
	}, nil
}

func seenFilterFromConfig(cfg map[string]interface{}) *filter.SeenFilter {
	f := &filter.SeenFilter{
		// Store 需要运行期实例，不从配置构建；配置场景下用 StoreKey 预留
		StoreKey: conv.ConfigGet(cfg, "store_key", ""),
	}
	if keys := conv.SliceAnyToString(cfg["keys"]); len(keys) > 0 {
		f.Keys = make(map[string]bool, len(keys))
		for _, k := range keys {
			f.Keys[k] = true
		}
	}
	return f
}

func BuildSampleNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &sample.Node{
		Sampler: &sample.Sampler{
			Rounds: conv.ConfigGet(cfg, "rounds", 0),
			Show:   conv.ConfigGet(cfg, "show", 0),
			Pick:   conv.ConfigGet(cfg, "pick", 0),
			Jitter: conv.ConfigGet(cfg, "jitter", 0.0),
		},
	}, nil
}
