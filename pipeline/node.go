package pipeline

import (
	"context"

	"github.com/rushteam/tastekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindSource Kind = "source" // 候选来源阶段：把调用方传入的池装入链路
	KindFilter Kind = "filter" // 过滤阶段：剔除已看/被排除的候选
	KindScore  Kind = "score"  // 打分阶段：对候选计算口味匹配分
	KindReRank Kind = "rerank" // 重排阶段：截断、阈值、顺序调优
	KindSample Kind = "sample" // 采样阶段：冷启动轮次选样
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态：Source 生成、Filter 截断、
// Score 改写分数、Sample 抽取子集，形态一致才能自由编排。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		vctx *core.ViewerContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
