// Package analysis summarises a parsed trace.
//
// Metrics follow an observe/value/reset cycle so they can be fed one status
// at a time during replay or all at once from a file:
//
//   - [MeanScore], [ScoreStdDev], [TotalScore]: reward statistics
//   - [Ratio]: fraction of statuses matching a predicate, e.g. [OnTrack]
//   - [MeanAbsSteering]: average steering effort
//
// [Summarize] runs the standard set and adds per-rule and per-level counts.
package analysis
