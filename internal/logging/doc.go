// Package logging builds the slog loggers used across shears.
//
// It provides a console handler that renders compact "TIME LEVEL component:
// message k=v" lines, a JSON handler for machine consumption, and small attr
// helpers so call sites do not import log/slog directly.
package logging
