package core

// EngineConfig 是引擎相关的配置接口，用于提供默认值。
// 轮次数与最终轮抖动常量在不同部署间有差异，这里只约定接口。
type EngineConfig interface {
	// DefaultRounds 返回交互采样的轮次数 N
	DefaultRounds() int

	// DefaultShowPerRound 返回每轮展示的影片数 m
	DefaultShowPerRound() int

	// DefaultPickPerRound 返回每轮要求选择的影片数 k
	DefaultPickPerRound() int

	// DefaultTopN 返回推荐结果的截断数量
	DefaultTopN() int

	// DefaultMinScore 返回推荐结果的最低分数阈值
	DefaultMinScore() float64

	// DefaultJitter 返回最终轮打分的抖动幅度（± 区间）
	DefaultJitter() float64
}

// DefaultEngineConfig 是默认的引擎配置实现。
type DefaultEngineConfig struct{}

func (c *DefaultEngineConfig) DefaultRounds() int {
	return 3
}

func (c *DefaultEngineConfig) DefaultShowPerRound() int {
	return 10
}

func (c *DefaultEngineConfig) DefaultPickPerRound() int {
	return 3
}

func (c *DefaultEngineConfig) DefaultTopN() int {
	return 20
}

func (c *DefaultEngineConfig) DefaultMinScore() float64 {
	return 0.2
}

func (c *DefaultEngineConfig) DefaultJitter() float64 {
	return 10
}
