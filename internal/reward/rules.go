package reward

import "github.com/san-kum/racelog/internal/telemetry"

// Outcome is the rule that decided a snapshot's reward.
type Outcome struct {
	Rule        int
	Description string
	Level       Level
	Score       float64
}

// Rule is one entry of the reward table.
type Rule struct {
	Number      int
	Description string
	Level       Level
	Match       func(s Snapshot, c telemetry.Conditions) bool
}

func (r Rule) outcome() Outcome {
	return Outcome{Rule: r.Number, Description: r.Description, Level: r.Level, Score: r.Level.Score()}
}

var table = []Rule{
	{0, "Default.", Default,
		func(Snapshot, telemetry.Conditions) bool { return true }},
	{1, "Doing OK; not doing great.", Small,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.QuiteNearCentre && !c.TurningHard && !c.GoingFast
		}},
	{2, "On track, not quite near centre, slow, steering back towards centre.", Small,
		func(s Snapshot, c telemetry.Conditions) bool {
			return s.AllWheelsOnTrack && !c.QuiteNearCentre && c.GoingSlowly && c.CorrectingCourse
		}},
	{3, "Near centre of track, not straight, but not fast either.", Small,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.NearCentre && c.HeadingInRightDirection && !c.GoingStraight && !c.GoingFast && !c.TurningHard
		}},
	{4, "Cornering nicely around a tight corner.", Big,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.TurningHard && c.QuiteNearCentre && c.HeadingInRightDirection && c.GoingSlowly
		}},
	{5, "Middle of track, fast and straight in right direction.", VeryBig,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.NearCentre && c.HeadingInRightDirection && c.GoingFast && c.GoingStraight
		}},
	{6, "Going fast and turning hard.", Penalise,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.GoingFast && c.TurningHard
		}},
	{7, "Going fast near edge of track.", Penalise,
		func(_ Snapshot, c telemetry.Conditions) bool {
			return c.GoingFast && !c.QuiteNearCentre
		}},
	{8, "At least one wheel off the track.", Penalise,
		func(s Snapshot, _ telemetry.Conditions) bool {
			return !s.AllWheelsOnTrack
		}},
}

// Rules returns a copy of the reward table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// Judge runs every rule in order; each match overwrites the previous one.
func Judge(s Snapshot, c telemetry.Conditions) Outcome {
	var out Outcome
	for _, r := range table {
		if r.Match(s, c) {
			out = r.outcome()
		}
	}
	return out
}
