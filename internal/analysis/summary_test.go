package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/racelog/internal/telemetry"
)

func TestSummarize(t *testing.T) {
	statuses := []telemetry.Status{
		{Steps: 1, Progress: 1.5, Score: 1.0, RuleNumber: 5, RewardLevel: "Very Big", AllWheelsOnTrack: true},
		{Steps: 2, Progress: 3.0, Score: 0.45, RuleNumber: 3, RewardLevel: "Small", AllWheelsOnTrack: true},
		{Steps: 3, Progress: 2.0, Score: 0.45, RuleNumber: 1, RewardLevel: "Small", AllWheelsOnTrack: true},
		{Steps: 4, Progress: 2.5, Score: -1.0, RuleNumber: 8, RewardLevel: "Penalise"},
	}
	sum := Summarize(statuses)

	if sum.Statuses != 4 {
		t.Errorf("expected 4 statuses, got %d", sum.Statuses)
	}
	if sum.FinalSteps != 4 {
		t.Errorf("expected final steps 4, got %d", sum.FinalSteps)
	}
	if sum.MaxProgress != 3.0 {
		t.Errorf("expected max progress 3.0, got %f", sum.MaxProgress)
	}

	if v, ok := sum.Metric("on_track"); !ok || v != 0.75 {
		t.Errorf("expected on_track 0.75, got %f (%v)", v, ok)
	}
	if _, ok := sum.Metric("nope"); ok {
		t.Error("unknown metric should not be found")
	}

	rules := sum.RuleNumbers()
	want := []int{1, 3, 5, 8}
	if len(rules) != len(want) {
		t.Fatalf("expected rules %v, got %v", want, rules)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("expected rules %v, got %v", want, rules)
		}
	}

	wantLevels := []Count{{"Very Big", 1}, {"Small", 2}, {"Penalise", 1}}
	if diff := cmp.Diff(wantLevels, sum.LevelCounts()); diff != "" {
		t.Errorf("level counts mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelCountsUnknownLabelsLast(t *testing.T) {
	sum := Summary{Levels: map[string]int{"Zed": 1, "Penalise": 2, "Big": 3, "Huge": 4}}
	want := []Count{{"Big", 3}, {"Penalise", 2}, {"Huge", 4}, {"Zed", 1}}
	if diff := cmp.Diff(want, sum.LevelCounts()); diff != "" {
		t.Errorf("level counts mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Statuses != 0 || sum.FinalSteps != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if len(sum.Metrics) != len(Standard()) {
		t.Errorf("expected every metric reported, got %d", len(sum.Metrics))
	}
}
