package textutil

import "strings"

// NormalizeNewlines replaces every "\r\n" in s with "\n" and remaps the
// given UTF-16 offsets into the normalized string. An offset that sits
// between the '\r' and '\n' of a pair maps to the position of the
// resulting '\n'.
func NormalizeNewlines(s string, offsets ...int) (string, []int) {
	mapped := make([]int, len(offsets))
	copy(mapped, offsets)
	if !strings.Contains(s, "\r\n") {
		return s, mapped
	}

	// removed[k] is the UTF-16 position (in s) of the k-th dropped '\r'.
	var removed []int
	units := 0
	for i, r := range s {
		if r == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			removed = append(removed, units)
		}
		units++
		if r >= 0x10000 {
			units++
		}
	}

	for i, off := range mapped {
		shift := 0
		for _, pos := range removed {
			if pos >= off {
				break
			}
			shift++
		}
		mapped[i] = off - shift
	}

	return strings.ReplaceAll(s, "\r\n", "\n"), mapped
}
