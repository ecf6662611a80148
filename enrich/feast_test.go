package enrich

import (
	"context"
	"testing"
)

// 需要真实的 Feast serving 端点才能运行，留作联调用例。
func TestFeastProviderMovieFeatures(t *testing.T) {
	t.Skip("需要连接真实的 Feast 服务器才能运行")

	p, err := NewFeastProvider("localhost", 6566, "tastekit", "movie_analysis")
	if err != nil {
		t.Fatalf("NewFeastProvider() error = %v", err)
	}
	defer p.Close()

	features, err := p.MovieFeatures(context.Background(), []string{"blade-runner-1982"})
	if err != nil {
		t.Fatalf("MovieFeatures() error = %v", err)
	}
	if len(features) == 0 {
		t.Error("expected materialized features for the probe key")
	}
}
