// Package rank 对候选影片计算细粒度的口味匹配分：
// 维度余弦 + 主题共鸣的加权混合。与 sample 包的粗粒度多样性度量是
// 两套独立算法，分别服务于不同的数据可得性（候选池通常没有分析向量，
// 终排候选已经过外部补全），不要合并。
package rank

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/pipeline"
	"github.com/rushteam/tastekit/pkg/utils"
)

// 分数混合权重：维度匹配为主，主题共鸣为辅。
const (
	dimensionalWeight = 0.7
	thematicWeight    = 0.3
)

// Result 是单个候选的打分明细。
type Result struct {
	Score            float64
	DimensionalMatch float64
	ThematicMatch    float64
	Reasons          []string
}

// Score 对一个候选打分。
//
// 预过滤：候选的归一化 key 命中已评分集合时直接返回零分，
// 永远不推荐看过的片子。
//
// 维度匹配是指纹均值向量与候选向量在"双方都存在"的维度交集上的余弦；
// 缺失维度既不进点积也不进模长（补 0 会错误地惩罚候选）。交集为空时为 0。
//
// 主题匹配 = Σ(指纹中候选各主题的权重) / max(最大主题权重, 1)，
// 粗略落在 [0,1]，奖励触达观影者最强共鸣主题的候选。
func Score(fp *core.Fingerprint, m *core.Movie, ratedKeys map[string]bool) Result {
	if ratedKeys[m.Key()] || ratedKeys[m.Slug()] {
		return Result{}
	}

	dim := dimensionalMatch(&fp.Dimensions, m.Vector)
	theme := thematicMatch(fp, m.Themes)

	r := Result{
		DimensionalMatch: dim,
		ThematicMatch:    theme,
		Score:            dimensionalWeight*dim + thematicWeight*theme,
	}
	r.Reasons = reasons(fp, m, dim, theme)
	return r
}

// dimensionalMatch 计算交集余弦。任一侧模长为零时返回 0（不是 NaN）。
func dimensionalMatch(profile *core.Vector, candidate *core.Vector) float64 {
	if candidate == nil {
		return 0
	}

	var dot, normP, normC float64
	for d := 0; d < core.NumDimensions; d++ {
		p, okP := profile.Get(core.Dimension(d))
		c, okC := candidate.Get(core.Dimension(d))
		if !okP || !okC {
			continue
		}
		dot += p * c
		normP += p * p
		normC += c * c
	}

	if normP == 0 || normC == 0 {
		return 0
	}
	return dot / (math.Sqrt(normP) * math.Sqrt(normC))
}

func thematicMatch(fp *core.Fingerprint, themes []string) float64 {
	if len(themes) == 0 || len(fp.Themes) == 0 {
		return 0
	}
	var sum float64
	for _, t := range themes {
		sum += fp.Themes[t]
	}
	return sum / fp.MaxThemeWeight()
}

// 解释语的触发阈值。解释是给人看的元信息，不参与排序。
const (
	exceptionalDimThreshold = 0.8
	strongDimThreshold      = 0.6
	themeReasonThreshold    = 0.5
)

func reasons(fp *core.Fingerprint, m *core.Movie, dim, theme float64) []string {
	var out []string

	switch {
	case dim > exceptionalDimThreshold:
		out = append(out, "exceptional dimensional alignment with your taste profile")
	case dim > strongDimThreshold:
		out = append(out, "strong dimensional alignment with your taste profile")
	}

	if theme > themeReasonThreshold {
		matched := make([]string, 0, len(m.Themes))
		for _, t := range m.Themes {
			if fp.Themes[t] > 0 {
				matched = append(matched, t)
			}
		}
		if len(matched) > 0 {
			out = append(out, "explores themes you return to: "+strings.Join(matched, ", "))
		}
	}

	return out
}

// 并行打分的触发阈值：池子小时串行更快，也更好读。
const parallelThreshold = 256

// TasteNode 是打分 Node：用 vctx.Fingerprint 对 items 逐个打分，
// 把明细写进 Labels（dimensional_match / thematic_match / reason）。
// 大候选池按分片并发打分，打分本身是纯函数，分片间无共享写。
type TasteNode struct {
	// Chunks 并发分片数（<=1 表示串行；默认按池大小自动）
	Chunks int
}

func (n *TasteNode) Name() string        { return "score.taste" }
func (n *TasteNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *TasteNode) Process(
	ctx context.Context,
	vctx *core.ViewerContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || vctx == nil || vctx.Fingerprint == nil {
		return items, nil
	}

	ratedKeys := vctx.RatedKeys()
	fp := vctx.Fingerprint

	score := func(its []*core.Item) {
		for _, it := range its {
			if it == nil || it.Movie == nil {
				continue
			}
			res := Score(fp, it.Movie, ratedKeys)
			it.Score = res.Score
			it.PutLabel("dimensional_match", utils.Label{
				Value:  strconv.FormatFloat(res.DimensionalMatch, 'f', 4, 64),
				Source: "score",
			})
			it.PutLabel("thematic_match", utils.Label{
				Value:  strconv.FormatFloat(res.ThematicMatch, 'f', 4, 64),
				Source: "score",
			})
			for _, reason := range res.Reasons {
				it.PutLabel("reason", utils.Label{Value: reason, Source: "score"})
			}
		}
	}

	chunks := n.Chunks
	if chunks <= 1 && len(items) >= parallelThreshold {
		chunks = 4
	}
	if chunks <= 1 {
		score(items)
		return items, nil
	}

	eg, _ := errgroup.WithContext(ctx)
	size := (len(items) + chunks - 1) / chunks
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		part := items[start:end]
		eg.Go(func() error {
			score(part)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// ScoreDetail 把打分明细格式化为一条 label 值，方便透传观测。
func ScoreDetail(r Result) string {
	return fmt.Sprintf("score=%.4f dim=%.4f theme=%.4f", r.Score, r.DimensionalMatch, r.ThematicMatch)
}
