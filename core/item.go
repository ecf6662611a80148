package core

import "github.com/rushteam/tastekit/pkg/utils"

// Item 是 Pipeline 中的承载结构：影片、分数、解释标签。
// Labels 用于 explain / 观测 / 策略驱动；Score 用于排序决策。
type Item struct {
	Movie  *Movie
	Score  float64
	Labels map[string]utils.Label
}

func NewItem(m *Movie) *Item {
	return &Item{
		Movie:  m,
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
