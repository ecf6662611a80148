package sample

import "github.com/rushteam/tastekit/core"

// 多样性距离权重。只依赖元数据（年代/类型/导演），
// 因为冷启动候选池还没有经过外部分析服务补全。
const (
	decadeUnit    = 10 // 每相差一个年代的距离
	decadeCap     = 50 // 年代距离上限
	genreUnit     = 15 // 每个不重叠类型的距离
	directorBonus = 20 // 导演不同的固定加成
	gapYearCap    = 50 // 最终轮年份距离上限
	gapGenreUnit  = 25 // 最终轮每个未覆盖类型的加成
)

// diversityDistance 计算两部影片的粗粒度差异度：
// 年代差（每档 10 分封顶 50）+ 类型不重叠（每个 15 分）+ 导演不同（+20）。
func diversityDistance(a, b *core.Movie) float64 {
	d := 0.0

	decadeGap := a.Decade() - b.Decade()
	if decadeGap < 0 {
		decadeGap = -decadeGap
	}
	decadeScore := float64(decadeGap / 10 * decadeUnit)
	if decadeScore > decadeCap {
		decadeScore = decadeCap
	}
	d += decadeScore

	d += float64(genreNonOverlap(a.Genres, b.Genres) * genreUnit)

	if a.Director != b.Director {
		d += directorBonus
	}

	return d
}

// genreNonOverlap = max(|g1|,|g2|) - overlap。
func genreNonOverlap(g1, g2 []string) int {
	set := make(map[string]bool, len(g1))
	for _, g := range g1 {
		set[g] = true
	}
	overlap := 0
	for _, g := range g2 {
		if set[g] {
			overlap++
		}
	}
	max := len(g1)
	if len(g2) > max {
		max = len(g2)
	}
	return max - overlap
}

// selectionStats 是此前所有选择的聚合统计，最终轮按"补缺口"打分。
type selectionStats struct {
	meanYear float64
	genres   map[string]bool
}

func aggregate(selected []core.Movie) selectionStats {
	stats := selectionStats{genres: make(map[string]bool)}
	var yearSum, yearCount int
	for i := range selected {
		m := &selected[i]
		if m.Year > 0 {
			yearSum += m.Year
			yearCount++
		}
		for _, g := range m.Genres {
			stats.genres[g] = true
		}
	}
	if yearCount > 0 {
		stats.meanYear = float64(yearSum) / float64(yearCount)
	}
	return stats
}

// gapScore 衡量候选对已选集合的"补缺"程度：
// 距离均值年份越远、带来的新类型越多，分越高。
func gapScore(m *core.Movie, stats selectionStats) float64 {
	score := 0.0

	if m.Year > 0 && stats.meanYear > 0 {
		yearGap := float64(m.Year) - stats.meanYear
		if yearGap < 0 {
			yearGap = -yearGap
		}
		if yearGap > gapYearCap {
			yearGap = gapYearCap
		}
		score += yearGap
	}

	newGenres := 0
	for _, g := range m.Genres {
		if !stats.genres[g] {
			newGenres++
		}
	}
	score += float64(newGenres * gapGenreUnit)

	return score
}
