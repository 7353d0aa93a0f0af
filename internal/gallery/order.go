// Package gallery orders the portfolio images, renders their thumbnails and
// owns the lightbox that shows one of them at full size.
package gallery

import (
	"slices"
	"strings"
)

// Key is the number formed by every digit of a filename, kept as a digit
// string so arbitrarily long runs compare without overflow.
type Key struct {
	digits string
}

// NumericKey extracts the key of filename. Filenames without digits yield
// an invalid key.
func NumericKey(filename string) Key {
	var b strings.Builder
	for _, r := range filename {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return Key{digits: b.String()}
}

// Valid reports whether the filename had at least one digit.
func (k Key) Valid() bool {
	return k.digits != ""
}

// String returns the key without leading zeros, or "" when invalid.
func (k Key) String() string {
	if !k.Valid() {
		return ""
	}
	return k.normalized()
}

func (k Key) normalized() string {
	s := strings.TrimLeft(k.digits, "0")
	if s == "" {
		return "0"
	}
	return s
}

// Compare orders keys numerically. Invalid keys sort after valid ones.
func (k Key) Compare(o Key) int {
	switch {
	case !k.Valid() && !o.Valid():
		return 0
	case !k.Valid():
		return 1
	case !o.Valid():
		return -1
	}
	a, b := k.normalized(), o.normalized()
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Entry is one gallery image.
type Entry struct {
	Filename string
	Key      Key
}

// Source returns the image source for filename. No escaping is applied.
func Source(prefix, filename string) string {
	return prefix + filename
}

// Sort returns entries for filenames in ascending key order. Equal keys
// fall back to byte-wise filename order. Input is not modified.
func Sort(filenames []string) []Entry {
	entries := make([]Entry, len(filenames))
	for i, f := range filenames {
		entries[i] = Entry{Filename: f, Key: NumericKey(f)}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := a.Key.Compare(b.Key); c != 0 {
			return c
		}
		return strings.Compare(a.Filename, b.Filename)
	})
	return entries
}

// Keyless returns the filenames that have no digits.
func Keyless(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		if !e.Key.Valid() {
			out = append(out, e.Filename)
		}
	}
	return out
}

// Filenames projects entries back to their filenames.
func Filenames(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Filename
	}
	return out
}
