package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/schedule-engine/rules"
	"github.com/warp/schedule-engine/schedule"
)

func TestFromConfig_EmptyIsDefault(t *testing.T) {
	got, err := rules.FromConfig(rules.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := schedule.DefaultRules()
	if !got.MinDailyRestHours.Equal(want.MinDailyRestHours) ||
		!got.MaxAvgWeeklyHours.Equal(want.MaxAvgWeeklyHours) {
		t.Errorf("empty config must yield defaults, got %+v", got)
	}
}

func TestParse_YAMLOverrides(t *testing.T) {
	got, err := rules.Parse([]byte("preset: eu-working-time\nmin_daily_rest_hours: 9.5\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.MinDailyRestHours.Equal(decimal.NewFromFloat(9.5)) {
		t.Errorf("expected 9.5h daily rest, got %s", got.MinDailyRestHours)
	}
	// Untouched fields keep the preset value.
	if !got.MaxDailyHours.Equal(decimal.NewFromInt(12)) {
		t.Errorf("expected preset 12h max daily, got %s", got.MaxDailyHours)
	}
}

func TestParse_JSONDocumentAlsoWorks(t *testing.T) {
	got, err := rules.Parse([]byte(`{"preset": "lenient", "max_daily_hours": 16}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.MaxDailyHours.Equal(decimal.NewFromInt(16)) {
		t.Errorf("expected 16h max daily, got %s", got.MaxDailyHours)
	}
	if !got.MinWeeklyRestHours.Equal(decimal.NewFromInt(24)) {
		t.Errorf("expected lenient 24h weekly rest, got %s", got.MinWeeklyRestHours)
	}
}

func TestFromConfig_UnknownPreset(t *testing.T) {
	if _, err := rules.FromConfig(rules.Config{Preset: "klingon"}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestFromConfig_NonPositiveThreshold(t *testing.T) {
	bad := -1.0
	if _, err := rules.FromConfig(rules.Config{MaxDailyHours: &bad}); err == nil {
		t.Error("expected error for negative threshold")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("max_avg_weekly_hours: 44\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := rules.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.MaxAvgWeeklyHours.Equal(decimal.NewFromInt(44)) {
		t.Errorf("expected 44h, got %s", got.MaxAvgWeeklyHours)
	}
}

func TestLoadFile_EmptyPathIsDefault(t *testing.T) {
	got, err := rules.LoadFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.MinDailyRestHours.Equal(decimal.NewFromInt(11)) {
		t.Errorf("expected defaults, got %+v", got)
	}
}
