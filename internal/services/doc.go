// Package services defines shared utilities consumed by the transcode
// pipeline and external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     (probe, planning, missing tool, process, cancelled) consistently.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// stays uniform across components.
package services
