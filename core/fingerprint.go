package core

import "sort"

// Fingerprint 是观影者的口味指纹：封闭维度集合上的加权均值，
// 加上按权重累积的主题偏好。派生值，每次请求从调用方提供的影片列表重算，
// 从不持久化。
type Fingerprint struct {
	// Dimensions 的每个存在维度是该维度上所有贡献影片的加权均值，
	// 按维度独立归一（稀疏覆盖的维度不被整体分母稀释）。
	Dimensions Vector

	// Themes 按权重累积、不做归一化：反复出现的主题自然占优。
	Themes map[string]float64

	// AvgRating 是已评分影片的非加权均分；LovedCount 统计 Loved 标记。
	AvgRating  float64
	LovedCount int
}

func NewFingerprint() *Fingerprint {
	return &Fingerprint{Themes: make(map[string]float64)}
}

// MaxThemeWeight 返回最大主题权重，下限为 1，用作主题匹配的分母。
func (f *Fingerprint) MaxThemeWeight() float64 {
	max := 1.0
	for _, w := range f.Themes {
		if w > max {
			max = w
		}
	}
	return max
}

// TopThemes 返回权重最高的 n 个主题（权重降序，同权按名称升序，保证确定性）。
func (f *Fingerprint) TopThemes(n int) []string {
	names := make([]string, 0, len(f.Themes))
	for name := range f.Themes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := f.Themes[names[i]], f.Themes[names[j]]
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})
	if n > 0 && len(names) > n {
		names = names[:n]
	}
	return names
}

// DimensionScore 是一个维度及其在指纹中的均值。
type DimensionScore struct {
	Dimension Dimension
	Score     float64
}

// StrongPreferences 提取极端偏好的维度：均值 <= low 的与 >= high 的，
// 各自按极端程度排序。1-7 量表下通常取 low=2.5、high=5.5。
func (f *Fingerprint) StrongPreferences(low, high float64) (lowEnd, highEnd []DimensionScore) {
	for i := 0; i < NumDimensions; i++ {
		d := Dimension(i)
		score, ok := f.Dimensions.Get(d)
		if !ok {
			continue
		}
		switch {
		case score <= low:
			lowEnd = append(lowEnd, DimensionScore{Dimension: d, Score: score})
		case score >= high:
			highEnd = append(highEnd, DimensionScore{Dimension: d, Score: score})
		}
	}
	sort.Slice(lowEnd, func(i, j int) bool { return lowEnd[i].Score < lowEnd[j].Score })
	sort.Slice(highEnd, func(i, j int) bool { return highEnd[i].Score > highEnd[j].Score })
	return lowEnd, highEnd
}
