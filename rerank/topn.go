// Package rerank 在打分结果上做截断与顺序调优。
package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/pipeline"
)

// TopNNode 按分数降序排序后截取前 N 个，并可选地丢弃低于 MinScore 的
// 噪声推荐。通常放在 score.taste 之后。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.TasteNode{},                       // 打分
//	        &rerank.TopNNode{N: 20, MinScore: 0.2},  // 截取 Top 20，丢掉 < 0.2
//	    },
//	}
type TopNNode struct {
	// N 要保留的数量；N <= 0 表示不截断
	N int

	// MinScore 最低分数阈值；0 表示不过滤
	MinScore float64
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.ViewerContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	out := items
	if n.MinScore > 0 {
		out = make([]*core.Item, 0, len(items))
		for _, it := range items {
			if it != nil && it.Score >= n.MinScore {
				out = append(out, it)
			}
		}
	}

	// 同分按归一化 key 升序，保证排序确定性
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Movie.Key() < out[j].Movie.Key()
	})

	if n.N > 0 && len(out) > n.N {
		out = out[:n.N]
	}
	return out, nil
}
