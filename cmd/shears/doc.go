// Command shears trims and transcodes video files by planning and
// supervising an external ffmpeg/ffprobe toolchain.
package main
