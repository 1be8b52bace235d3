// Package reward scores one telemetry snapshot of a race car.
//
// Scoring runs in three stages:
//
//   - [Derive]: compute the eight driving-condition flags from the snapshot
//   - [Judge]: run the ordered rule table over snapshot and flags
//   - [Evaluator.Evaluate]: do both and write the trace lines the log
//     parser reads back
//
// # Rule Order
//
// Rules are checked in number order and every rule that matches replaces
// the outcome so far. The last matching rule wins, which is how rule 8
// (a wheel off the track) always overrides any reward granted before it:
//
//	res, _ := reward.New().Evaluate(snap)
//	if !snap.AllWheelsOnTrack {
//	    // res.Outcome.Rule == 8, res.Outcome.Score == -1
//	}
//
// The evaluator keeps no state between calls.
package reward
