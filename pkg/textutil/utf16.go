// Package textutil provides string arithmetic in UTF-16 code units.
//
// Selection offsets follow DOM semantics: they count UTF-16 code units, not
// bytes or runes. Go strings are UTF-8, so every offset crossing the boundary
// between a record and a Go string goes through this package.
package textutil

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Len16 returns the length of s in UTF-16 code units.
func Len16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ByteOffset converts a UTF-16 offset into a byte offset into s.
// An offset landing in the middle of a surrogate pair resolves to the start
// of the rune. Returns false if off is negative or past the end of s.
func ByteOffset(s string, off int) (int, bool) {
	if off < 0 {
		return 0, false
	}
	units := 0
	for i, r := range s {
		if units >= off {
			return i, true
		}
		units += utf16.RuneLen(r)
		if units > off {
			return i, true
		}
	}
	if units == off {
		return len(s), true
	}
	return 0, false
}

// IsBoundary reports whether off is a valid UTF-16 offset into s that does
// not fall between the two halves of a surrogate pair.
func IsBoundary(s string, off int) bool {
	b, ok := ByteOffset(s, off)
	return ok && Offset16(s, b) == off
}

// Offset16 converts a byte offset into s into a UTF-16 offset.
// A byte offset inside a multi-byte rune does not count that rune.
func Offset16(s string, byteOff int) int {
	byteOff = clamp(byteOff, 0, len(s))
	units := 0
	for i := 0; i < byteOff; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > byteOff {
			break
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

// Slice16 returns s[start:end] with start and end in UTF-16 units.
// Out of range bounds are clamped to the string.
func Slice16(s string, start, end int) string {
	n := Len16(s)
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	bs, _ := ByteOffset(s, start)
	be, _ := ByteOffset(s, end)
	return s[bs:be]
}

// Split16 splits s at a UTF-16 offset.
func Split16(s string, off int) (string, string) {
	b, ok := ByteOffset(s, off)
	if !ok {
		if off <= 0 {
			return "", s
		}
		return s, ""
	}
	return s[:b], s[b:]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
