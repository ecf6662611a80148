package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/tastekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("viewer", cel.DynType),
		cel.Variable("movie", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则条件解释器，使用 CEL (Common Expression Language) 实现。
// curated 排除表的触发条件以 CEL 表达式形式随数据下发，
// 这样启发式的开关阈值可以换表，不需要改打分代码。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：viewer.avg_rating >= 4.0 / viewer.rated_count >= 20
//   - 布尔：viewer.has_recent_activity
//   - 逻辑：viewer.avg_rating >= 4.0 && viewer.rated_count >= 20
//   - 包含："Drama" in viewer.top_genres
//   - 影片级（可选）：movie.year >= 2000 / movie.director == "..."
type Eval struct {
	env    *cel.Env
	viewer map[string]interface{}
	movie  map[string]interface{}
}

// NewEval 创建一个规则解释器。movie 可以为 nil（观影者级条件）。
func NewEval(summary *core.TasteSummary, movie *core.Movie) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		env:    env,
		viewer: viewerInput(summary),
		movie:  movieInput(movie),
	}
}

// Evaluate 编译并执行条件表达式，返回布尔结果。
// 空表达式视为恒真（无条件启用的规则）。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env not initialized")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"viewer": e.viewer,
		"movie":  e.movie,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func viewerInput(s *core.TasteSummary) map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	genreCounts := make(map[string]interface{}, len(s.GenreCounts))
	for g, c := range s.GenreCounts {
		genreCounts[g] = c
	}
	return map[string]interface{}{
		"avg_rating":          s.AvgRating,
		"rated_count":         s.RatedCount,
		"has_recent_activity": s.HasRecentActivity,
		"top_genres":          s.TopGenres,
		"favorite_directors":  s.FavoriteDirectors,
		"genre_counts":        genreCounts,
	}
}

func movieInput(m *core.Movie) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"title":    m.Title,
		"year":     m.Year,
		"genres":   m.Genres,
		"director": m.Director,
	}
}
