// Package exclude 把"已评分"列表扩展为"很可能已看过"的抑制集合。
// 所有 curated 知识（经典片单、时代爆款、导演作品表、系列链）都是
// 注入的参考数据，可整表替换；启发式的触发条件以 CEL 表达式随表下发，
// 换阈值不需要改代码。
package exclude

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/tastekit/core"
)

// Rule 是一条片单型启发式：条件命中时整单加入排除集合。
// 经典片单（cinephile）与时代爆款（zeitgeist）都是 Rule。
type Rule struct {
	Name string `yaml:"name" json:"name"`

	// Condition 是观影者级 CEL 条件，空串表示无条件启用。
	// 例如 "viewer.avg_rating >= 4.0 && viewer.rated_count >= 20"
	Condition string `yaml:"condition" json:"condition"`

	// Titles 是片单（原始标题，装载时归一化为 slug）。
	Titles []string `yaml:"titles" json:"titles"`
}

// Tables 是排除扩展的全部参考数据。
type Tables struct {
	Rules []Rule `yaml:"rules" json:"rules"`

	// Filmographies: 导演 -> 主要作品列表。
	// 喜欢某导演的观影者大概率看过其主要作品。
	Filmographies map[string][]string `yaml:"filmographies" json:"filmographies"`

	// Franchises: 续作标题 -> 前作列表。
	// 看过续作意味着看过前作。key 与 value 装载时都归一化为 slug。
	Franchises map[string][]string `yaml:"franchises" json:"franchises"`
}

// LoadTables 从 YAML 文件加载参考数据。
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables: %w", err)
	}
	return ParseTables(data)
}

// TablesFromStore 从 Store 读取 YAML 文档并解析，
// 用于参考数据集中下发（例如 Redis）的场景。
func TablesFromStore(ctx context.Context, s core.Store, key string) (*Tables, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return ParseTables(data)
}

// ParseTables 解析 YAML 字节为 Tables。
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, core.NewDomainError(core.ModuleExclude, core.ErrorCodeInvalidInput,
			fmt.Sprintf("parse tables: %v", err))
	}
	return &t, nil
}

// franchisePrereqs 按 slug 查系列前作。表 key 可能是原始标题，这里统一按
// slug 匹配。
func (t *Tables) franchisePrereqs(slug string) []string {
	if t.Franchises == nil {
		return nil
	}
	if prereqs, ok := t.Franchises[slug]; ok {
		return prereqs
	}
	for key, prereqs := range t.Franchises {
		if core.SlugTitle(key) == slug {
			return prereqs
		}
	}
	return nil
}
