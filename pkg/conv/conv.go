// Package conv 提供 Node 配置 map 的类型转换工具。
// 配置来自 YAML/JSON 反序列化，数值可能是 int 也可能是 float64。
package conv

// ToFloat64 将 any 转为 float64。
// 支持 float64、float32、int、int64、int32；bool 视为 1.0/0.0。
func ToFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

// ToInt 将 any 转为 int。
// 支持 int、int64、int32、float64、float32。
func ToInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	default:
		return 0, false
	}
}

// ToString 将 any 转为 string。
// 仅支持 string 类型，否则返回 ("", false)。
func ToString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ConfigGet 从配置 map 读取 key 并转为 T，失败时返回默认值。
func ConfigGet[T any](m map[string]interface{}, key string, def T) T {
	if m == nil {
		return def
	}
	v, ok := m[key]
	if !ok {
		return def
	}
	switch any(def).(type) {
	case float64:
		if f, ok := ToFloat64(v); ok {
			return any(f).(T)
		}
	case int:
		if i, ok := ToInt(v); ok {
			return any(i).(T)
		}
	case string:
		if s, ok := ToString(v); ok {
			return any(s).(T)
		}
	case bool:
		if b, ok := v.(bool); ok {
			return any(b).(T)
		}
	default:
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

// SliceAnyToString 将 []interface{} 转为 []string，非字符串元素被跳过。
func SliceAnyToString(v any) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MapToFloat64 将 map[string]interface{} 转为 map[string]float64，
// 不可转换的条目被跳过。
func MapToFloat64(m map[string]interface{}) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := ToFloat64(v); ok {
			out[k] = f
		}
	}
	return out
}
