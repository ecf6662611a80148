package core

import (
	"strconv"
	"strings"
)

// Movie 是推荐链路中的统一影片结构：评分输入与候选共用一个形态。
// 候选不会携带 Rating/Loved；Vector/Themes 由外部分析服务补全，可能缺失。
type Movie struct {
	Title    string
	Year     int
	Rating   float64 // 0-5，半星步进；仅当 Rated 为 true 时有效
	Rated    bool
	Loved    bool
	Genres   []string
	Director string
	Themes   []string
	Vector   *Vector
	Quality  float64 // 外部质量信号（可选），例如站外均分
}

// Key 返回影片的归一化标识：slug 加年份后缀（有年份时）。
func (m *Movie) Key() string {
	return TitleKey(m.Title, m.Year)
}

// Slug 返回不带年份的标题 slug，用于查 curated 表（表里不带年份）。
func (m *Movie) Slug() string {
	return SlugTitle(m.Title)
}

// Decade 返回影片所属年代（例如 1994 -> 1990）。
func (m *Movie) Decade() int {
	return m.Year / 10 * 10
}

// Weight 返回影片在指纹聚合中的贡献权重：
// Loved 记 2.0，有评分记 rating/5，否则记 1.0（中性）。
func (m *Movie) Weight() float64 {
	if m.Loved {
		return 2.0
	}
	if m.Rated {
		return m.Rating / 5
	}
	return 1.0
}

// SlugTitle 把标题归一化为 slug：小写、去掉非字母数字、空白折叠为 '-'。
// 与历史抓取数据里的 slug 规则保持一致，否则排除集合对不上。
func SlugTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastDash := true // 抑制开头的 '-'
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '\t' || r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TitleKey 返回 title_year 形式的归一化 key。year 为 0 时退化为纯 slug。
func TitleKey(title string, year int) string {
	slug := SlugTitle(title)
	if year <= 0 {
		return slug
	}
	return slug + "-" + strconv.Itoa(year)
}
