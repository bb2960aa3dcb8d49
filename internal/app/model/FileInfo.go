package model

import "time"

// FileInfo describes a local input file picked up by the batch converter.
type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
	Size     int64
}
