package gallery

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidIndex is returned when a reorder target is not an integer.
var ErrInvalidIndex = errors.New("please enter a valid index within the current range")

// Append returns c followed by entries, in the order given. Neither ids nor
// uris are deduplicated; callers supply unique ids.
func Append(c Collection, entries ...MediaEntry) Collection {
	out := make(Collection, 0, len(c)+len(entries))
	out = append(out, c...)
	return append(out, entries...)
}

// Delete returns c without the entry whose id matches. The remaining entries
// keep their relative order. An unknown id yields an unchanged copy.
func Delete(c Collection, id string) Collection {
	out := make(Collection, 0, len(c))
	for _, e := range c {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Move relocates the entry with the given id to index, counted among the
// entries that remain once it is removed. index is clamped into
// [0, len(c)-1]. An unknown id yields an unchanged copy.
func Move(c Collection, id string, index int) Collection {
	pos := c.IndexOf(id)
	if pos < 0 {
		return c.Clone()
	}
	entry := c[pos]

	rest := make(Collection, 0, len(c))
	rest = append(rest, c[:pos]...)
	rest = append(rest, c[pos+1:]...)

	index = max(0, min(index, len(rest)))

	out := make(Collection, 0, len(c))
	out = append(out, rest[:index]...)
	out = append(out, entry)
	return append(out, rest[index:]...)
}

// ParseTargetIndex parses a user-typed reorder position. Surrounding
// whitespace is ignored and only the leading integer is read, so "3abc" and
// "2.7" give 3 and 2. Integers too large for int saturate. Input with no
// leading digits returns ErrInvalidIndex.
func ParseTargetIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrInvalidIndex
	}

	n, err := strconv.ParseInt(s[:end], 10, 0)
	if err == nil {
		return int(n), nil
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	return 0, ErrInvalidIndex
}
