// Package mmfile provides read-only memory mapping of files, used to load
// vector snapshots without copying them through the Go heap.
package mmfile
