// Package deps resolves and reports on the external toolchain binaries.
//
// Resolve implements the lookup order for ffmpeg/ffprobe: bundled tool
// directory, then the application's own directory, then the system search
// path, then the literal name. CheckBinaries turns a list of requirements
// into availability statuses for preflight output.
package deps
