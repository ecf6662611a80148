// Package enrich 是外部分析服务的边界：按影片 key 取回预计算的
// 维度向量与主题标签。引擎不在线调用分析服务，只消费已物化的结果；
// 取不到特征时上层退化为部分指纹，而不是报错。
package enrich

import (
	"context"
	"encoding/json"

	"github.com/rushteam/tastekit/core"
)

// Features 是一部影片的分析产物。
type Features struct {
	Vector map[string]float64 `json:"vector,omitempty"`
	Themes []string           `json:"themes,omitempty"`
}

// Apply 把特征写回影片（只补缺，不覆盖已有的向量/主题）。
func (f *Features) Apply(m *core.Movie) {
	if m.Vector == nil && len(f.Vector) > 0 {
		m.Vector = core.VectorFromMap(f.Vector)
	}
	if len(m.Themes) == 0 && len(f.Themes) > 0 {
		m.Themes = f.Themes
	}
}

// Provider 按归一化影片 key 批量取回特征。
// 缺失的 key 不出现在结果里，不是错误。
type Provider interface {
	// Name 返回实现名称（memory / store / feast）
	Name() string

	// MovieFeatures 批量取回特征
	MovieFeatures(ctx context.Context, keys []string) (map[string]Features, error)
}

// MemoryProvider 是预装载的内存实现，用于测试与离线批处理。
type MemoryProvider map[string]Features

func (p MemoryProvider) Name() string { return "memory" }

func (p MemoryProvider) MovieFeatures(_ context.Context, keys []string) (map[string]Features, error) {
	out := make(map[string]Features, len(keys))
	for _, k := range keys {
		if f, ok := p[k]; ok {
			out[k] = f
		}
	}
	return out, nil
}

// StoreProvider 从 Store 读取 JSON 特征文档（每部影片一个 key）。
// 分析服务把产物写进 Store，引擎只读。
type StoreProvider struct {
	Store core.Store

	// KeyPrefix 是文档 key 前缀，实际 key 为 {KeyPrefix}{movieKey}
	KeyPrefix string
}

func (p *StoreProvider) Name() string { return "store" }

func (p *StoreProvider) MovieFeatures(ctx context.Context, keys []string) (map[string]Features, error) {
	if p.Store == nil || len(keys) == 0 {
		return map[string]Features{}, nil
	}

	storeKeys := make([]string, len(keys))
	for i, k := range keys {
		storeKeys[i] = p.KeyPrefix + k
	}

	docs, err := p.Store.BatchGet(ctx, storeKeys)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Features, len(docs))
	for i, k := range keys {
		data, ok := docs[storeKeys[i]]
		if !ok {
			continue
		}
		var f Features
		if json.Unmarshal(data, &f) != nil {
			continue // 坏文档跳过，不中断批量
		}
		out[k] = f
	}
	return out, nil
}

// EnrichMovies 用 Provider 给影片列表补全缺失的向量/主题。
// provider 为 nil 时什么都不做（部分指纹是合法结果）。
func EnrichMovies(ctx context.Context, provider Provider, movies []core.Movie) error {
	if provider == nil || len(movies) == 0 {
		return nil
	}

	need := make([]string, 0, len(movies))
	for i := range movies {
		if movies[i].Vector == nil || len(movies[i].Themes) == 0 {
			need = append(need, movies[i].Key())
		}
	}
	if len(need) == 0 {
		return nil
	}

	features, err := provider.MovieFeatures(ctx, need)
	if err != nil {
		return err
	}
	for i := range movies {
		if f, ok := features[movies[i].Key()]; ok {
			f.Apply(&movies[i])
		}
	}
	return nil
}
