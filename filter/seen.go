package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/tastekit/core"
)

// SeenFilter 过滤掉"很可能已看过"的候选：命中排除集合
// （slug 或 slug-year 任一形式）即移除。
//
// 排除集合的来源优先级：
// - Keys：内存集合（通常来自 exclude.Expander 的输出）
// - vctx.Exclusions：请求级集合
// - Store + Key：从存储读取 JSON 数组（共享排除表的场景）
type SeenFilter struct {
	// Keys 是内存中的排除集合
	Keys map[string]bool

	// Store 用于从存储中读取排除列表（可选）
	Store core.Store

	// StoreKey 是 Store 中的排除列表 key（可选）
	StoreKey string
}

func (f *SeenFilter) Name() string {
	return "filter.seen"
}

func (f *SeenFilter) ShouldFilter(
	ctx context.Context,
	vctx *core.ViewerContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Movie == nil {
		return true, nil
	}

	key := item.Movie.Key()
	slug := item.Movie.Slug()

	if f.Keys != nil && (f.Keys[key] || f.Keys[slug]) {
		return true, nil
	}
	if vctx != nil && vctx.Exclusions != nil && (vctx.Exclusions[key] || vctx.Exclusions[slug]) {
		return true, nil
	}

	if f.Store != nil && f.StoreKey != "" {
		data, err := f.Store.Get(ctx, f.StoreKey)
		if err == nil {
			var stored []string
			if json.Unmarshal(data, &stored) == nil {
				for _, k := range stored {
					if k == key || k == slug {
						return true, nil
					}
				}
			}
		}
		// 存储不可用时不中断链路，退化为内存集合
	}

	return false, nil
}
