package engine

import (
	"bytes"
	"strconv"

	"github.com/rushteam/tastekit/core"
	"github.com/rushteam/tastekit/exclude"
)

// FlexYear 兼容两种线上形态：数字 1994 与字符串 "1994"。
// 历史抓取数据里两种都有，边界层吞掉这个差异，core 只见 int。
type FlexYear int

func (y *FlexYear) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		// 年份解析不了按缺失处理，不挂掉整个请求
		*y = 0
		return nil
	}
	*y = FlexYear(n)
	return nil
}

func (y FlexYear) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(y))), nil
}

// MovieInput 是线上契约的影片形态（评分输入与候选共用）。
type MovieInput struct {
	Title    string             `json:"title"`
	Year     FlexYear           `json:"year,omitempty"`
	Rating   *float64           `json:"rating,omitempty"`
	Loved    bool               `json:"loved,omitempty"`
	Genres   []string           `json:"genres,omitempty"`
	Director string             `json:"director,omitempty"`
	Vector   map[string]float64 `json:"vector,omitempty"`
	Themes   []string           `json:"themes,omitempty"`
	Quality  float64            `json:"quality,omitempty"`
}

// Movie 转换为 core 形态。
func (in *MovieInput) Movie() core.Movie {
	m := core.Movie{
		Title:    in.Title,
		Year:     int(in.Year),
		Loved:    in.Loved,
		Genres:   in.Genres,
		Director: in.Director,
		Themes:   in.Themes,
		Quality:  in.Quality,
		Vector:   core.VectorFromMap(in.Vector),
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
		m.Rated = true
	}
	return m
}

func toMovies(inputs []MovieInput) []core.Movie {
	out := make([]core.Movie, 0, len(inputs))
	for i := range inputs {
		out = append(out, inputs[i].Movie())
	}
	return out
}

// MovieOutput 是响应中的影片形态（元数据子集）。
type MovieOutput struct {
	Title    string   `json:"title"`
	Year     FlexYear `json:"year,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Director string   `json:"director,omitempty"`
}

func toOutputs(movies []core.Movie) []MovieOutput {
	out := make([]MovieOutput, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		out = append(out, MovieOutput{
			Title:    m.Title,
			Year:     FlexYear(m.Year),
			Genres:   m.Genres,
			Director: m.Director,
		})
	}
	return out
}

// RecommendRequest / RecommendResponse 对应 Recommend 契约。
type RecommendRequest struct {
	RatedMovies []MovieInput `json:"ratedMovies"`
	Candidates  []MovieInput `json:"candidates"`
}

type Recommendation struct {
	Title            string   `json:"title"`
	Year             FlexYear `json:"year,omitempty"`
	Score            float64  `json:"score"`
	DimensionalMatch float64  `json:"dimensionalMatch"`
	ThematicMatch    float64  `json:"thematicMatch"`
	Reasons          []string `json:"reasons,omitempty"`
}

type FingerprintSummary struct {
	TopThemes  []string `json:"topThemes"`
	AvgRating  float64  `json:"avgRating"`
	LovedCount int      `json:"lovedCount"`

	// 极端偏好维度（线上维度名），各自按极端程度排序。
	StrongLow  []string `json:"strongLow,omitempty"`
	StrongHigh []string `json:"strongHigh,omitempty"`
}

type RecommendResponse struct {
	Recommendations    []Recommendation   `json:"recommendations"`
	FingerprintSummary FingerprintSummary `json:"fingerprintSummary"`
	Insights           []string           `json:"insights,omitempty"`
}

// TasteSummaryInput 是调用方可选提供的口味摘要；缺省时由评分列表推导。
type TasteSummaryInput struct {
	TopGenres         []string `json:"topGenres,omitempty"`
	FavoriteDirectors []string `json:"favoriteDirectors,omitempty"`
	AvgRating         float64  `json:"avgRating,omitempty"`
	HasRecentActivity bool     `json:"hasRecentActivity,omitempty"`
}

// BuildExclusionsRequest / BuildExclusionsResponse 对应 BuildExclusions 契约。
type BuildExclusionsRequest struct {
	RatedMovies  []MovieInput       `json:"ratedMovies"`
	TasteSummary *TasteSummaryInput `json:"tasteSummary,omitempty"`
}

type BuildExclusionsResponse struct {
	Exclusions []string      `json:"exclusions"`
	Stats      exclude.Stats `json:"stats"`
}

// NextRoundRequest / NextRoundResponse 对应 NextRound 契约。
type PriorRound struct {
	Shown    []MovieInput `json:"shown"`
	Selected []MovieInput `json:"selected"`
}

type NextRoundRequest struct {
	Pool        []MovieInput `json:"pool"`
	PriorRounds []PriorRound `json:"priorRounds,omitempty"`

	// Seed 可选随机种子：测试用确定性；不传时用真实熵源。
	Seed *int64 `json:"seed,omitempty"`
}

type NextRoundResponse struct {
	RoundIndex  int           `json:"roundIndex,omitempty"`
	Movies      []MovieOutput `json:"movies,omitempty"`
	Instruction string        `json:"instruction,omitempty"`

	Completed     bool          `json:"completed,omitempty"`
	AllSelections []MovieOutput `json:"allSelections,omitempty"`
}
