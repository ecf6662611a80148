package utils

// Label 是链路中的解释性标注：可追踪、可透传。
// 打分、过滤、采样各阶段都通过 Label 留下自己的痕迹，
// 这也是本库唯一的"观测"手段（纯库，不落日志）。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // profile / score / filter / exclude / sample ...
}

// MergeLabel 合并同名 Label，默认策略是保留历史：
// - Value 以 '|' 累积
// - Source 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
