package common

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Now returns the current unix timestamp in seconds.
func Now() int64 {
	return time.Now().Unix()
}

// NowMilli returns the current unix timestamp in milliseconds.
func NowMilli() int64 {
	return time.Now().UnixNano() / 1e6
}

// NowMilliStr returns the current unix millisecond timestamp as string.
func NowMilliStr() string {
	return strconv.FormatInt(NowMilli(), 10)
}

// FileExist checks if a file exists at filePath.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// AbsolutePath returns datadir + filename, or filename if it is absolute.
func AbsolutePath(datadir string, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(datadir, filename)
}

// CurrentDir returns the current working directory.
func CurrentDir() (string, error) {
	return os.Getwd()
}
