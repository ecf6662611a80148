package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	feastsdk "github.com/feast-dev/feast/sdk/go"

	"github.com/rushteam/tastekit/core"
)

// FeastProvider 从 Feast Online Store 取回预计算的影片特征。
// 分析服务把每部影片的维度分值物化成一个 feature view
// （feature 名与维度线上名一致），主题物化为 '|' 连接的字符串特征。
//
// 实体 key 约定：{"movie_key": <归一化影片 key>}。
type FeastProvider struct {
	client *feastsdk.GrpcClient

	// Project 项目名称
	Project string

	// FeatureView 特征视图名，例如 "movie_aesthetics"
	FeatureView string
}

// themesFeature 是主题特征的字段名（'|' 连接的主题列表）。
const themesFeature = "themes"

// NewFeastProvider 创建 Feast 特征提供方。
func NewFeastProvider(host string, port int, project, featureView string) (*FeastProvider, error) {
	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEnrich, core.ErrorCodeUnavailable,
			fmt.Sprintf("feast connect: %v", err))
	}
	return &FeastProvider{
		client:      client,
		Project:     project,
		FeatureView: featureView,
	}, nil
}

func (p *FeastProvider) Name() string { return "feast" }

// Close 释放与 Feast 的 gRPC 连接。
func (p *FeastProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func (p *FeastProvider) MovieFeatures(ctx context.Context, keys []string) (map[string]Features, error) {
	if p.client == nil || len(keys) == 0 {
		return map[string]Features{}, nil
	}

	features := make([]string, 0, core.NumDimensions+1)
	for _, d := range core.Dimensions() {
		features = append(features, p.FeatureView+":"+d.String())
	}
	features = append(features, p.FeatureView+":"+themesFeature)

	entityRows := make([]feastsdk.Row, len(keys))
	for i, k := range keys {
		entityRows[i] = feastsdk.Row{"movie_key": feastsdk.StrVal(k)}
	}

	req := &feastsdk.OnlineFeaturesRequest{
		Features: features,
		Entities: entityRows,
		Project:  p.Project,
	}

	resp, err := p.client.GetOnlineFeatures(ctx, req)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleEnrich, core.ErrorCodeUnavailable,
			fmt.Sprintf("feast get online features: %v", err))
	}

	rows := resp.Rows()
	if len(rows) != len(keys) {
		return nil, core.NewDomainError(core.ModuleEnrich, core.ErrorCodeInternalError,
			fmt.Sprintf("feast row count mismatch: expected %d, got %d", len(keys), len(rows)))
	}

	out := make(map[string]Features, len(keys))
	for i, k := range keys {
		f := p.rowFeatures(rows[i])
		if len(f.Vector) > 0 || len(f.Themes) > 0 {
			out[k] = f
		}
	}
	return out, nil
}

func (p *FeastProvider) rowFeatures(row feastsdk.Row) Features {
	f := Features{}
	for _, d := range core.Dimensions() {
		val, ok := row[p.FeatureView+":"+d.String()]
		if !ok {
			continue
		}
		if score, ok := numericValue(val); ok && score > 0 {
			if f.Vector == nil {
				f.Vector = make(map[string]float64, core.NumDimensions)
			}
			f.Vector[d.String()] = score
		}
	}
	if val, ok := row[p.FeatureView+":"+themesFeature]; ok {
		if s := stringValue(val); s != "" {
			f.Themes = strings.Split(s, "|")
		}
	}
	return f
}

// numericValue 从 SDK 的 Value 中提取数值。SDK 返回 protobuf 包装值，
// 这里走字符串表示再解析，避免绑定 proto 内部类型。
func numericValue(val interface{}) (float64, bool) {
	if val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	s := strings.TrimSpace(valueString(val))
	if s == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}

func stringValue(val interface{}) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return valueString(val)
}

// valueString 把 protobuf Value 的文本形式（如 `double_val:5.5`）剥成裸值。
func valueString(val interface{}) string {
	s := fmt.Sprintf("%v", val)
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.Trim(s, `" `)
}
