package analysis

import (
	"sort"

	"github.com/san-kum/racelog/internal/reward"
	"github.com/san-kum/racelog/internal/telemetry"
)

type Value struct {
	Name  string
	Value float64
}

type Count struct {
	Key   string
	Count int
}

type Summary struct {
	Statuses    int
	FinalSteps  int
	MaxProgress float64
	Metrics     []Value
	Rules       map[int]int
	Levels      map[string]int
}

// Summarize feeds every status through the standard metrics.
func Summarize(statuses []telemetry.Status) Summary {
	sum := Summary{
		Statuses: len(statuses),
		Rules:    make(map[int]int),
		Levels:   make(map[string]int),
	}

	metrics := Standard()
	for _, s := range statuses {
		for _, m := range metrics {
			m.Observe(s)
		}
		sum.Rules[s.RuleNumber]++
		sum.Levels[s.RewardLevel]++
		if s.Progress > sum.MaxProgress {
			sum.MaxProgress = s.Progress
		}
	}
	if len(statuses) > 0 {
		sum.FinalSteps = statuses[len(statuses)-1].Steps
	}

	for _, m := range metrics {
		sum.Metrics = append(sum.Metrics, Value{Name: m.Name(), Value: m.Value()})
	}
	return sum
}

// RuleNumbers returns the rules seen, ascending.
func (s Summary) RuleNumbers() []int {
	nums := make([]int, 0, len(s.Rules))
	for n := range s.Rules {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// LevelCounts lists level counts from the most generous level down to
// Penalise. Labels the evaluator does not know come last, by label.
func (s Summary) LevelCounts() []Count {
	counts := make([]Count, 0, len(s.Levels))
	for k, v := range s.Levels {
		counts = append(counts, Count{Key: k, Count: v})
	}
	sort.Slice(counts, func(i, j int) bool {
		ri, rj := levelRank(counts[i].Key), levelRank(counts[j].Key)
		if ri != rj {
			return ri < rj
		}
		return counts[i].Key < counts[j].Key
	})
	return counts
}

func levelRank(label string) int {
	l, err := reward.ParseLevel(label)
	if err != nil {
		return len(reward.Levels())
	}
	for i, v := range reward.Levels() {
		if v == l {
			return i
		}
	}
	return len(reward.Levels())
}

func (s Summary) Metric(name string) (float64, bool) {
	for _, v := range s.Metrics {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}
