// Package history persists a record of past transcode runs in SQLite.
package history
