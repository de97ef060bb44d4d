// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - MediaInfo: the duration/bitrate/resolution/frame-rate projection the
//     planner and size estimator consume
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns a parsed Result
//   - Probe: Inspect plus MediaInfo extraction in one call
//
// Frame rates arrive as rational strings ("30000/1001") and are evaluated by
// strict numerator/denominator parsing, never expression evaluation.
package ffprobe
