// Package tastekit 是一个电影口味指纹与匹配工具包（Taste Kit）。
//
// 设计要点：
// - Pipeline-first: 所有匹配逻辑通过 Node 串联（Filter → Score → ReRank / Sample）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
// - Stateless: 评分历史与轮次记录由调用方每次传入，引擎不落任何状态
// - Node 可扩展: 自定义 Node 即可插拔扩展（本地打分或外部特征源均可）
package tastekit

import "github.com/rushteam/tastekit/pipeline"

// 轻量 facade：便于用户直接 import "tastekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindSource = pipeline.KindSource
	KindFilter = pipeline.KindFilter
	KindScore  = pipeline.KindScore
	KindReRank = pipeline.KindReRank
	KindSample = pipeline.KindSample
)
