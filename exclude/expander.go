package exclude

import (
	"sort"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/pkg/dsl"
)

// deepGenreThreshold: 单一类型评分达到该数量时，下游候选生成应偏向
// 该类型的冷门片。只是信号，不产生排除。
const deepGenreThreshold = 10

// Stats 是一次扩展的规模统计，用于监控启发式的激进程度。
type Stats struct {
	RatedCount     int     `json:"ratedCount"`
	ExcludedCount  int     `json:"excludedCount"`
	ExpansionRatio float64 `json:"expansionRatio"`

	// DeepGenres 是评分密度达到阈值的类型（深耕信号）。
	DeepGenres []string `json:"deepGenres,omitempty"`

	// TriggeredRules 记录命中的片单规则名（可观测性）。
	TriggeredRules []string `json:"triggeredRules,omitempty"`
}

// Result 是扩展输出：集合、排好序的 key 列表、统计。
type Result struct {
	Exclusions map[string]bool
	Keys       []string
	Stats      Stats
}

// Contains 判断一部影片是否命中排除集合（slug 或 slug-year 任一形式）。
func (r *Result) Contains(m *core.Movie) bool {
	return r.Exclusions[m.Key()] || r.Exclusions[m.Slug()]
}

// Expander 把评分列表扩展为排除集合。Tables 为 nil 时只排除评分本身。
type Expander struct {
	Tables *Tables
}

// Expand 执行扩展。集合单调增长：每层启发式只加不减。
//
// 基础层：每个评分标题原样排除（slug 与 slug-year 双录）。
// 片单层（Rules）：CEL 条件命中则整单加入。
// 导演层：偏爱导演的作品表整表加入。
// 系列层：评分中的已知续作，其前作加入。
//
// 条件求值失败的规则按未命中处理，不中断扩展。
func (e *Expander) Expand(movies []core.Movie, summary *core.TasteSummary) Result {
	set := make(map[string]bool, len(movies)*2)

	for i := range movies {
		m := &movies[i]
		set[m.Slug()] = true
		set[m.Key()] = true
	}

	stats := Stats{RatedCount: len(movies)}

	if e.Tables != nil {
		eval := dsl.NewEval(summary, nil)
		for _, rule := range e.Tables.Rules {
			ok, err := eval.Evaluate(rule.Condition)
			if err != nil || !ok {
				continue
			}
			stats.TriggeredRules = append(stats.TriggeredRules, rule.Name)
			for _, title := range rule.Titles {
				set[core.SlugTitle(title)] = true
			}
		}

		if summary != nil {
			for _, director := range summary.FavoriteDirectors {
				for _, title := range e.Tables.Filmographies[director] {
					set[core.SlugTitle(title)] = true
				}
			}
		}

		for i := range movies {
			for _, prereq := range e.Tables.franchisePrereqs(movies[i].Slug()) {
				set[core.SlugTitle(prereq)] = true
			}
		}
	}

	if summary != nil {
		for genre, count := range summary.GenreCounts {
			if count >= deepGenreThreshold {
				stats.DeepGenres = append(stats.DeepGenres, genre)
			}
		}
		sort.Strings(stats.DeepGenres)
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats.ExcludedCount = len(set)
	if len(movies) > 0 {
		stats.ExpansionRatio = float64(len(set)) / float64(len(movies))
	}

	return Result{Exclusions: set, Keys: keys, Stats: stats}
}
