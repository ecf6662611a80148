package core

import (
	"reflect"
	"testing"
)

func TestMaxThemeWeight(t *testing.T) {
	fp := NewFingerprint()
	if got := fp.MaxThemeWeight(); got != 1.0 {
		t.Errorf("empty fingerprint MaxThemeWeight() = %v, want floor 1.0", got)
	}

	fp.Themes["memory"] = 0.4 // 低于下限
	if got := fp.MaxThemeWeight(); got != 1.0 {
		t.Errorf("MaxThemeWeight() = %v, want floor 1.0", got)
	}

	fp.Themes["identity"] = 3.2
	if got := fp.MaxThemeWeight(); got != 3.2 {
		t.Errorf("MaxThemeWeight() = %v, want 3.2", got)
	}
}

func TestTopThemes(t *testing.T) {
	fp := NewFingerprint()
	fp.Themes["memory"] = 2.0
	fp.Themes["identity"] = 3.0
	fp.Themes["faith"] = 2.0 // 与 memory 同权，按名称升序
	fp.Themes["grief"] = 1.0

	got := fp.TopThemes(3)
	want := []string{"identity", "faith", "memory"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopThemes(3) = %v, want %v", got, want)
	}

	if got := fp.TopThemes(0); len(got) != 4 {
		t.Errorf("TopThemes(0) should return all, got %v", got)
	}
}

func TestStrongPreferences(t *testing.T) {
	fp := NewFingerprint()
	fp.Dimensions.Set(EditingTempo, 1.5)
	fp.Dimensions.Set(SilenceAsTool, 2.0)
	fp.Dimensions.Set(MoralComplexity, 6.5)
	fp.Dimensions.Set(SensoryImmersion, 4.0) // 中间地带不入选

	low, high := fp.StrongPreferences(2.5, 5.5)

	if len(low) != 2 || low[0].Dimension != EditingTempo || low[1].Dimension != SilenceAsTool {
		t.Errorf("low end = %v, want [editing_tempo silence_as_tool]", low)
	}
	if len(high) != 1 || high[0].Dimension != MoralComplexity {
		t.Errorf("high end = %v, want [moral_complexity]", high)
	}
}
