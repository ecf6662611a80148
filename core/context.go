package core

import "github.com/rushteam/tastekit/pkg/utils"

// TasteSummary 是轻量的口味摘要，由已评分影片的元数据推导，
// 驱动排除扩展等不需要完整指纹的启发式。
type TasteSummary struct {
	TopGenres         []string
	FavoriteDirectors []string
	AvgRating         float64
	HasRecentActivity bool

	// RatedCount 与 GenreCounts 供规则条件（CEL）使用。
	RatedCount  int
	GenreCounts map[string]int

	// AvgYear 是评分影片上映年份的均值（0 表示无年份信息），用于年代画像。
	AvgYear float64
}

// ViewerContext 承载一次请求的观影者上下文，贯穿整个 Pipeline 透传。
// 引擎无状态：所有历史（评分列表、轮次记录）都由调用方每次传入。
type ViewerContext struct {
	ViewerID string

	// Rated 是观影者的完整评分列表（引擎的唯一事实来源）。
	Rated []Movie

	// Fingerprint / Summary 是请求期派生值；为空时由相应 Node 填充或跳过。
	Fingerprint *Fingerprint
	Summary     *TasteSummary

	// Exclusions 是归一化 title key 的抑制集合（slug 或 slug-year）。
	Exclusions map[string]bool

	// Labels 是观影者级标签，可驱动整个 Pipeline 行为。
	Labels map[string]utils.Label

	// Params 请求级上下文参数（轮次历史、随机种子等）。
	Params map[string]any
}

// RatedKeys 返回评分集合的归一化 key（slug 与 slug-year 都收录，
// 这样无论候选带不带年份都能命中）。
func (vctx *ViewerContext) RatedKeys() map[string]bool {
	keys := make(map[string]bool, len(vctx.Rated)*2)
	for i := range vctx.Rated {
		m := &vctx.Rated[i]
		keys[m.Slug()] = true
		keys[m.Key()] = true
	}
	return keys
}

// PutLabel 写入观影者级 Label。
func (vctx *ViewerContext) PutLabel(key string, lbl utils.Label) {
	if vctx.Labels == nil {
		vctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := vctx.Labels[key]; ok {
		vctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	vctx.Labels[key] = lbl
}

// GetLabel 获取观影者级 Label。
func (vctx *ViewerContext) GetLabel(key string) (utils.Label, bool) {
	if vctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := vctx.Labels[key]
	return lbl, ok
}
