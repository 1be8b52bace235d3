package telemetry

import "errors"

var (
	// ErrDegenerateExtent indicates a track whose points span zero width or
	// height, which would make any mapping onto a viewport divide by zero.
	ErrDegenerateExtent = errors.New("telemetry: degenerate track extent")

	// ErrNoStatuses indicates a track with no status records.
	ErrNoStatuses = errors.New("telemetry: track has no statuses")
)
