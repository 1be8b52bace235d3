package reward

import "fmt"

type Level int

const (
	Penalise Level = iota
	Default
	Small
	Big
	VeryBig
)

var levelLabels = map[Level]string{
	Penalise: "Penalise",
	Default:  "Default",
	Small:    "Small",
	Big:      "Big",
	VeryBig:  "Very Big",
}

var levelScores = map[Level]float64{
	Penalise: -1.0,
	Default:  0.1,
	Small:    0.45,
	Big:      0.75,
	VeryBig:  1.0,
}

func (l Level) String() string {
	if s, ok := levelLabels[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) Score() float64 { return levelScores[l] }

// ParseLevel maps a trace label such as "Very Big" back to its level.
func ParseLevel(label string) (Level, error) {
	for l, s := range levelLabels {
		if s == label {
			return l, nil
		}
	}
	return 0, fmt.Errorf("reward: unknown level %q", label)
}

func Levels() []Level {
	return []Level{VeryBig, Big, Small, Default, Penalise}
}
