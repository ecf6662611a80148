// Package profile 把评分影片列表聚合为口味指纹（Fingerprint）与口味摘要
// （TasteSummary）。两者都是请求期派生值：纯函数、无随机、无 I/O，
// 相同输入得到逐位相同的输出。
package profile

import (
	"sort"
	"time"

	"github.com/rushteam/tastekit/core"
)

// Build 聚合评分影片为指纹。
//
// 权重规则：Loved 记 2.0，有评分记 rating/5，否则记 1.0（见 Movie.Weight）。
// 维度聚合是逐维度的加权均值：每个维度只对定义了该维度的影片归一，
// 稀疏覆盖的维度不会被整体分母拉低。主题按权重累加、不归一。
//
// 空输入返回空指纹（所有 map 为空、AvgRating 为 0），不是错误。
func Build(movies []core.Movie) *core.Fingerprint {
	fp := core.NewFingerprint()

	var dimWeighted [core.NumDimensions]float64
	var dimWeights [core.NumDimensions]float64

	var ratingSum float64
	var ratingCount int

	for i := range movies {
		m := &movies[i]
		w := m.Weight()

		if m.Vector != nil {
			for d := 0; d < core.NumDimensions; d++ {
				if score, ok := m.Vector.Get(core.Dimension(d)); ok {
					dimWeighted[d] += w * score
					dimWeights[d] += w
				}
			}
		}

		for _, theme := range m.Themes {
			fp.Themes[theme] += w
		}

		if m.Rated {
			ratingSum += m.Rating
			ratingCount++
		}
		if m.Loved {
			fp.LovedCount++
		}
	}

	for d := 0; d < core.NumDimensions; d++ {
		if dimWeights[d] > 0 {
			fp.Dimensions.Set(core.Dimension(d), dimWeighted[d]/dimWeights[d])
		}
	}

	if ratingCount > 0 {
		fp.AvgRating = ratingSum / float64(ratingCount)
	}

	return fp
}

// summarize 的默认口径
const (
	topGenreCount         = 5
	favoriteDirectorCount = 5
	recentActivityYears   = 3
)

// Summarize 从评分影片的元数据推导口味摘要，供排除扩展等启发式使用。
// now 只用于判断近期活跃（最近 ~3 年内有上映年份的评分）。
func Summarize(movies []core.Movie, now time.Time) *core.TasteSummary {
	s := &core.TasteSummary{
		RatedCount:  len(movies),
		GenreCounts: make(map[string]int),
	}

	directorCounts := make(map[string]int)
	var ratingSum float64
	var ratingCount int
	var yearSum, yearCount int
	recentCutoff := now.Year() - recentActivityYears

	for i := range movies {
		m := &movies[i]
		for _, g := range m.Genres {
			s.GenreCounts[g]++
		}
		if m.Director != "" {
			directorCounts[m.Director]++
		}
		if m.Rated {
			ratingSum += m.Rating
			ratingCount++
		}
		if m.Year > 0 {
			yearSum += m.Year
			yearCount++
			if m.Year >= recentCutoff {
				s.HasRecentActivity = true
			}
		}
	}

	if ratingCount > 0 {
		s.AvgRating = ratingSum / float64(ratingCount)
	}
	if yearCount > 0 {
		s.AvgYear = float64(yearSum) / float64(yearCount)
	}

	s.TopGenres = topKeys(s.GenreCounts, topGenreCount)
	// 只有出现 2 次以上的导演才算"偏爱"，单片导演没有信号
	favorites := make(map[string]int, len(directorCounts))
	for d, c := range directorCounts {
		if c >= 2 {
			favorites[d] = c
		}
	}
	s.FavoriteDirectors = topKeys(favorites, favoriteDirectorCount)

	return s
}

// topKeys 按计数降序取前 n 个 key，同计数按名称升序，保证确定性。
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := counts[keys[i]], counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
