// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultHostPrefix is prepended to every scraped repository name.
const DefaultHostPrefix = "github.com/"

var (
	// ErrInvalidStarLabel is returned when a star label is not numeric once the "k" suffix is removed.
	ErrInvalidStarLabel = errors.New("invalid star label")
	// ErrMalformedEntry is returned when a stored line cannot be read back into an Entry.
	ErrMalformedEntry = errors.New("malformed entry")
)

// Entry is a single collected repository with its normalized star count.
// It is the core domain entity of this application.
type Entry struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
}

// String renders the entry as an output line without the trailing newline.
func (e Entry) String() string {
	return e.Name + "," + strconv.Itoa(e.Stars)
}

// ParseStarLabel normalizes a star label such as "1.2k" or " 950 " into an integer count.
// The result is truncated toward zero.
func ParseStarLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	thousands := strings.HasSuffix(s, "k")
	if thousands {
		s = strings.TrimSuffix(s, "k")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidStarLabel, label, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %q: not a finite number", ErrInvalidStarLabel, label)
	}
	if thousands {
		f *= 1000
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidStarLabel, label)
	}
	return int(f), nil
}

// ParseEntryLine reads a line written by Entry.String back into an Entry.
// Names are never escaped, so the split happens on the last comma.
func ParseEntryLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	i := strings.LastIndex(line, ",")
	if i <= 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}
	stars, err := strconv.Atoi(line[i+1:])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q: %v", ErrMalformedEntry, line, err)
	}
	return Entry{Name: line[:i], Stars: stars}, nil
}
