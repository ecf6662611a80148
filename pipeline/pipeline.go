package pipeline

import (
	"context"

	"github.com/rushteam/tastekit/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链。
// Pipeline 自身不持有状态：同一条链可以被任意多个请求并发执行，
// 请求间的全部差异都在 vctx 与 items 里。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	vctx *core.ViewerContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, vctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
