// Package export writes a trace to files: an animated GIF of a window of
// statuses and an SVG of the track with the driven line.
package export
