package utils

import (
	"path/filepath"
	"strconv"
	"time"
)

// UniqueName builds a storage name for an uploaded file from the current
// unix-millisecond timestamp plus the original file's extension, e.g.
// "1717171717171.png". Uniqueness holds as long as no two uploads of the
// same kind land in the same millisecond.
func UniqueName(originalName string) string {
	return UniqueNameAt(originalName, time.Now())
}

// UniqueNameAt is UniqueName with an explicit timestamp.
func UniqueNameAt(originalName string, t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + filepath.Ext(originalName)
}
