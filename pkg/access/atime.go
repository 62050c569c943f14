package access

import (
	"time"

	"github.com/djherbis/atime"
)

// AtimeSource reads access times from the filesystem
type AtimeSource struct{}

// NewAtimeSource returns the default StatSource.
func NewAtimeSource() StatSource {
	return AtimeSource{}
}

// AccessTime returns the last access time recorded by the OS for path.
func (AtimeSource) AccessTime(path string) (time.Time, error) {
	return atime.Stat(path)
}
