// Package viz draws a parsed trace in the terminal.
//
// A [Scene] owns a braille [Canvas] and a [Viewport] that maps track
// coordinates onto it. Each frame draws the waypoints as a closed loop and
// the car as a small outline placed by heading and steering angle, green
// while all wheels are on the track and red otherwise. A [Tally] carries
// running counts between frames; the caller owns it.
//
// Colours come from a [Theme] so the same scene can be rendered to the
// terminal or exported as GIF frames.
package viz
