package core

import "context"

// Store 是引用数据的读写抽象（curated 表、共享候选池、预计算特征文档）。
// 引擎本身无状态，Store 只承载可替换的参考数据，不承载会话状态。
//
// 实现见 store 包：MemoryStore（测试/原型）、RedisStore（线上共享）。
type Store interface {
	// Name 返回实现名称（memory / redis）
	Name() string

	// Get 读取 key 的原始字节；不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入 key；可选 ttl（秒）
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取；缺失的 key 不出现在结果里
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)
}
