package sample

import (
	"context"
	"strconv"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/pipeline"
	"github.com/rushteam/tastekit/pkg/utils"
)

// HistoryParam 是 ViewerContext.Params 中轮次历史的约定 key，值为 []Round。
const HistoryParam = "sample_rounds"

// Node 把采样器包装为 Pipeline Node：输入 items 作为候选池，
// 输出下一轮要展示的子集。轮次历史从 vctx.Params[HistoryParam] 读取。
// 终态时返回全部选择（拼接结果），并打上 sample_completed 标签。
type Node struct {
	Sampler *Sampler
}

func (n *Node) Name() string        { return "sample.round" }
func (n *Node) Kind() pipeline.Kind { return pipeline.KindSample }

func (n *Node) Process(
	_ context.Context,
	vctx *core.ViewerContext,
	items []*core.Item,
) ([]*core.Item, error) {
	s := n.Sampler
	if s == nil {
		s = &Sampler{}
	}

	pool := make([]core.Movie, 0, len(items))
	for _, it := range items {
		if it != nil && it.Movie != nil {
			pool = append(pool, *it.Movie)
		}
	}

	var history []Round
	if vctx != nil && vctx.Params != nil {
		if h, ok := vctx.Params[HistoryParam].([]Round); ok {
			history = h
		}
	}

	out := s.Next(pool, history)

	movies := out.Movies
	roundLabel := strconv.Itoa(out.RoundIndex)
	if out.Completed {
		movies = out.Selections
		roundLabel = "completed"
	}

	result := make([]*core.Item, 0, len(movies))
	for i := range movies {
		m := movies[i]
		it := core.NewItem(&m)
		it.PutLabel("sample_round", utils.Label{Value: roundLabel, Source: "sample"})
		result = append(result, it)
	}
	return result, nil
}
