// Package sample 实现冷启动的多轮交互采样：没有任何评分历史时，
// 通过 N 轮"展示 m 部、选 k 部"逐步套取口味信号，并保证轮间多样性最大化。
//
// 采样器无状态：每次调用都接收完整的轮次历史（各轮展示池与选择），
// 返回下一轮的样本与指令。轮次一经产生即不可变。
package sample

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rushteam/tastekit/core"
)

// Round 是一个已完成轮次的记录，由调用方原样回传。
type Round struct {
	Index    int
	Shown    []core.Movie
	Selected []core.Movie
}

// Output 是下一轮的产出，或终态（Completed 为 true 时只有 Selections 有效）。
type Output struct {
	RoundIndex  int
	Movies      []core.Movie
	Instruction string

	Completed  bool
	Selections []core.Movie
}

// Sampler 是轮次选样状态机。
//
// 轮 1：整池洗牌取前 Show 部。
// 中间轮：剔除已展示，按"到所有已选影片的平均多样性距离"降序取前 Show 部。
// 最终轮：剔除已展示，按"对已选集合聚合统计的补缺分 + 有界抖动"降序取前 Show 部。
// N 轮之后：终态，拼接所有轮的选择。
//
// 唯一的随机性是轮 1 洗牌与最终轮抖动；Rand 可注入固定种子以便测试断言。
type Sampler struct {
	// Rounds 轮次数 N（<=0 时取默认 3）
	Rounds int

	// Show 每轮展示数 m（<=0 时取默认 10）
	Show int

	// Pick 每轮要求选择数 k，只用于生成指令文案；
	// 选择数量的校验是调用方契约，采样器假设输入合法。
	Pick int

	// Jitter 最终轮抖动幅度（± 区间；<=0 时取默认 10）
	Jitter float64

	// Rand 随机源；为空时用时钟种子
	Rand *rand.Rand
}

func (s *Sampler) rounds() int {
	if s.Rounds > 0 {
		return s.Rounds
	}
	return (&core.DefaultEngineConfig{}).DefaultRounds()
}

func (s *Sampler) show() int {
	if s.Show > 0 {
		return s.Show
	}
	return (&core.DefaultEngineConfig{}).DefaultShowPerRound()
}

func (s *Sampler) pick() int {
	if s.Pick > 0 {
		return s.Pick
	}
	return (&core.DefaultEngineConfig{}).DefaultPickPerRound()
}

func (s *Sampler) jitter() float64 {
	if s.Jitter > 0 {
		return s.Jitter
	}
	return (&core.DefaultEngineConfig{}).DefaultJitter()
}

func (s *Sampler) rng() *rand.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Next 根据轮次历史计算下一轮。history 为空时产出轮 1。
func (s *Sampler) Next(pool []core.Movie, history []Round) Output {
	n := s.rounds()

	if len(history) >= n {
		var all []core.Movie
		for _, r := range history {
			all = append(all, r.Selected...)
		}
		return Output{Completed: true, Selections: all}
	}

	roundIndex := len(history) + 1
	remaining := excludeShown(pool, history)

	var movies []core.Movie
	switch {
	case roundIndex == 1:
		movies = s.firstRound(remaining)
	case roundIndex == n:
		movies = s.finalRound(remaining, history)
	default:
		movies = s.diversityRound(remaining, history)
	}

	return Output{
		RoundIndex:  roundIndex,
		Movies:      movies,
		Instruction: s.instruction(roundIndex, n),
	}
}

// excludeShown 剔除任何先前轮次展示过的影片，保证轮间展示池两两不相交。
func excludeShown(pool []core.Movie, history []Round) []core.Movie {
	if len(history) == 0 {
		return pool
	}
	shown := make(map[string]bool)
	for _, r := range history {
		for i := range r.Shown {
			shown[r.Shown[i].Key()] = true
		}
	}
	out := make([]core.Movie, 0, len(pool))
	for i := range pool {
		if !shown[pool[i].Key()] {
			out = append(out, pool[i])
		}
	}
	return out
}

func (s *Sampler) firstRound(pool []core.Movie) []core.Movie {
	shuffled := make([]core.Movie, len(pool))
	copy(shuffled, pool)
	s.rng().Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return truncate(shuffled, s.show())
}

// diversityRound 取"与已选影片平均差异最大"的候选，拉开口味探测的覆盖面。
func (s *Sampler) diversityRound(pool []core.Movie, history []Round) []core.Movie {
	selected := allSelected(history)
	if len(selected) == 0 {
		// 历史里没有选择（调用方契约被破坏），尽力而为：按原序截断
		return truncate(pool, s.show())
	}

	return s.takeTop(pool, func(m *core.Movie) float64 {
		var sum float64
		for i := range selected {
			sum += diversityDistance(m, &selected[i])
		}
		return sum / float64(len(selected))
	})
}

// finalRound 按补缺分 + 有界抖动取样，避免同一口味画像在多个会话里
// 得到完全一样的最终轮。
func (s *Sampler) finalRound(pool []core.Movie, history []Round) []core.Movie {
	selected := allSelected(history)
	if len(selected) == 0 {
		return truncate(pool, s.show())
	}

	stats := aggregate(selected)
	rng := s.rng()
	jitter := s.jitter()

	return s.takeTop(pool, func(m *core.Movie) float64 {
		return gapScore(m, stats) + (rng.Float64()*2-1)*jitter
	})
}

// takeTop 对池子逐个打分，按分数降序（同分按 key 升序）取前 Show 部。
func (s *Sampler) takeTop(pool []core.Movie, score func(*core.Movie) float64) []core.Movie {
	type scored struct {
		movie core.Movie
		score float64
	}
	all := make([]scored, len(pool))
	for i := range pool {
		all[i] = scored{movie: pool[i], score: score(&pool[i])}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].movie.Key() < all[j].movie.Key()
	})

	out := make([]core.Movie, 0, len(all))
	for _, sc := range all {
		out = append(out, sc.movie)
	}
	return truncate(out, s.show())
}

func allSelected(history []Round) []core.Movie {
	var out []core.Movie
	for _, r := range history {
		out = append(out, r.Selected...)
	}
	return out
}

func truncate(movies []core.Movie, n int) []core.Movie {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}

func (s *Sampler) instruction(roundIndex, n int) string {
	k := s.pick()
	switch {
	case roundIndex == 1:
		return fmt.Sprintf("Pick exactly %d favorites from these movies.", k)
	case roundIndex == n:
		return fmt.Sprintf("Last round: pick exactly %d more favorites.", k)
	default:
		return fmt.Sprintf("Round %d of %d: pick exactly %d favorites.", roundIndex, n, k)
	}
}
