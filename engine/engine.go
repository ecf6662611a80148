// Package engine 是三个对外契约（Recommend / BuildExclusions / NextRound）
// 的装配层：解析线上形态、补全特征、编排 Pipeline、组装响应。
// 传输无关：调用方自带 HTTP/RPC 路由，这里只有纯函数。
package engine

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/enrich"
	"github.com/rushteam/tastekit/exclude"
	"github.com/rushteam/tastekit/filter"
	"github.com/rushteam/tastekit/pipeline"
	"github.com/rushteam/tastekit/profile"
	"github.com/rushteam/tastekit/rank"
	"github.com/rushteam/tastekit/rerank"
	"github.com/rushteam/tastekit/sample"
)

// Engine 聚合一次部署的全部依赖。零值可用（默认配置、无参考表、无特征源）。
type Engine struct {
	// Config 引擎默认值；nil 时用 core.DefaultEngineConfig
	Config core.EngineConfig

	// Tables 排除扩展的参考数据；nil 时只排除评分本身
	Tables *exclude.Tables

	// Provider 外部分析服务的特征边界；nil 时跳过补全（部分指纹）
	Provider enrich.Provider

	// Now 时钟注入（测试用）；nil 时用 time.Now
	Now func() time.Time
}

func (e *Engine) config() core.EngineConfig {
	if e.Config != nil {
		return e.Config
	}
	return &core.DefaultEngineConfig{}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Recommend 根据评分历史对候选池打分排序。
// 空评分列表或空候选池返回空结果集，不是错误。
func (e *Engine) Recommend(ctx context.Context, req *RecommendRequest) (*RecommendResponse, error) {
	rated := toMovies(req.RatedMovies)
	candidates := toMovies(req.Candidates)

	// 特征补全尽力而为：分析服务不可达时按部分指纹继续
	if e.Provider != nil {
		if err := enrich.EnrichMovies(ctx, e.Provider, rated); err != nil && !core.IsUnavailable(err) {
			return nil, err
		}
		if err := enrich.EnrichMovies(ctx, e.Provider, candidates); err != nil && !core.IsUnavailable(err) {
			return nil, err
		}
	}

	fp := profile.Build(rated)
	summary := profile.Summarize(rated, e.now())

	vctx := &core.ViewerContext{
		Rated:       rated,
		Fingerprint: fp,
		Summary:     summary,
	}
	vctx.Exclusions = vctx.RatedKeys()

	items := make([]*core.Item, 0, len(candidates))
	for i := range candidates {
		items = append(items, core.NewItem(&candidates[i]))
	}

	cfg := e.config()
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&filter.FilterNode{Filters: []filter.Filter{&filter.SeenFilter{}}},
			&rank.TasteNode{},
			&rerank.TopNNode{N: cfg.DefaultTopN(), MinScore: cfg.DefaultMinScore()},
		},
	}

	ranked, err := p.Run(ctx, vctx, items)
	if err != nil {
		return nil, err
	}

	lowEnd, highEnd := fp.StrongPreferences(strongLowCutoff, strongHighCutoff)
	resp := &RecommendResponse{
		Recommendations: make([]Recommendation, 0, len(ranked)),
		FingerprintSummary: FingerprintSummary{
			TopThemes:  fp.TopThemes(5),
			AvgRating:  fp.AvgRating,
			LovedCount: fp.LovedCount,
			StrongLow:  dimensionNames(lowEnd),
			StrongHigh: dimensionNames(highEnd),
		},
	}

	for _, it := range ranked {
		resp.Recommendations = append(resp.Recommendations, Recommendation{
			Title:            it.Movie.Title,
			Year:             FlexYear(it.Movie.Year),
			Score:            it.Score,
			DimensionalMatch: labelFloat(it, "dimensional_match"),
			ThematicMatch:    labelFloat(it, "thematic_match"),
			Reasons:          labelValues(it, "reason"),
		})
	}

	resp.Insights = insights(summary, resp.Recommendations)
	return resp, nil
}

// BuildExclusions 扩展"很可能已看过"的抑制集合。
func (e *Engine) BuildExclusions(_ context.Context, req *BuildExclusionsRequest) (*BuildExclusionsResponse, error) {
	rated := toMovies(req.RatedMovies)

	summary := profile.Summarize(rated, e.now())
	// 调用方显式提供的摘要字段优先于推导值
	if ts := req.TasteSummary; ts != nil {
		if len(ts.TopGenres) > 0 {
			summary.TopGenres = ts.TopGenres
		}
		if len(ts.FavoriteDirectors) > 0 {
			summary.FavoriteDirectors = ts.FavoriteDirectors
		}
		if ts.AvgRating > 0 {
			summary.AvgRating = ts.AvgRating
		}
		if ts.HasRecentActivity {
			summary.HasRecentActivity = true
		}
	}

	expander := &exclude.Expander{Tables: e.Tables}
	result := expander.Expand(rated, summary)

	return &BuildExclusionsResponse{
		Exclusions: result.Keys,
		Stats:      result.Stats,
	}, nil
}

// NextRound 推进交互采样状态机一步。
func (e *Engine) NextRound(_ context.Context, req *NextRoundRequest) (*NextRoundResponse, error) {
	cfg := e.config()

	sampler := &sample.Sampler{
		Rounds: cfg.DefaultRounds(),
		Show:   cfg.DefaultShowPerRound(),
		Pick:   cfg.DefaultPickPerRound(),
		Jitter: cfg.DefaultJitter(),
	}
	if req.Seed != nil {
		sampler.Rand = rand.New(rand.NewSource(*req.Seed))
	}

	history := make([]sample.Round, 0, len(req.PriorRounds))
	for i, pr := range req.PriorRounds {
		history = append(history, sample.Round{
			Index:    i + 1,
			Shown:    toMovies(pr.Shown),
			Selected: toMovies(pr.Selected),
		})
	}

	out := sampler.Next(toMovies(req.Pool), history)

	if out.Completed {
		return &NextRoundResponse{
			Completed:     true,
			AllSelections: toOutputs(out.Selections),
		}, nil
	}
	return &NextRoundResponse{
		RoundIndex:  out.RoundIndex,
		Movies:      toOutputs(out.Movies),
		Instruction: out.Instruction,
	}, nil
}

// 1-7 量表下的极端偏好切分点
const (
	strongLowCutoff  = 2.5
	strongHighCutoff = 5.5
)

func dimensionNames(scores []core.DimensionScore) []string {
	if len(scores) == 0 {
		return nil
	}
	out := make([]string, 0, len(scores))
	for _, ds := range scores {
		out = append(out, ds.Dimension.String())
	}
	return out
}

// insights 生成人类可读的口味洞察，advisory 性质，不参与任何排序。
func insights(summary *core.TasteSummary, recs []Recommendation) []string {
	var out []string

	if len(summary.TopGenres) > 0 {
		out = append(out, "Your taste strongly favors "+summary.TopGenres[0]+" films")
	}
	if len(summary.FavoriteDirectors) > 0 {
		out = append(out, "You're a fan of "+summary.FavoriteDirectors[0]+"'s work")
	}

	switch {
	case summary.AvgYear == 0:
		// 没有年份信息就不谈年代
	case summary.AvgYear < 1990:
		out = append(out, "You appreciate classic cinema")
	case summary.AvgYear > 2010:
		out = append(out, "You enjoy contemporary films")
	default:
		out = append(out, "You have an eclectic taste spanning different eras")
	}

	highScore := 0
	for _, r := range recs {
		if r.Score > 0.7 {
			highScore++
		}
	}
	if highScore > 5 {
		out = append(out, "Found "+strconv.Itoa(highScore)+" highly matched recommendations for you")
	}

	return out
}

func labelFloat(it *core.Item, key string) float64 {
	lbl, ok := it.Labels[key]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(lbl.Value, 64)
	if err != nil {
		return 0
	}
	return f
}

func labelValues(it *core.Item, key string) []string {
	lbl, ok := it.Labels[key]
	if !ok || lbl.Value == "" {
		return nil
	}
	return strings.Split(lbl.Value, "|")
}
