// Package encode models transcode jobs and turns them into supervised
// ffmpeg invocations: job validation, deterministic argument planning,
// output size estimation, and process supervision with streamed progress.
package encode
