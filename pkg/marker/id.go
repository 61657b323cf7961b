// Package marker locates positions by round-tripping them through
// serialization. A uniquely identified, empty placeholder element is
// inserted at the position in a disposable copy of the tree, and its
// serialized form is searched for (structural to flat), or a placeholder
// is spliced into serialized content and found again after parsing (flat
// to structural).
package marker

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDPrefix starts every generated marker ID.
const IDPrefix = "texty-"

// IDSource hands out marker identifiers. IDs combine a process-wide counter
// with a random UUID, so they do not repeat within a process and are
// unlikely to appear in user content.
type IDSource struct {
	counter atomic.Uint64
}

// Next returns a fresh identifier.
func (s *IDSource) Next() string {
	n := s.counter.Add(1)
	return IDPrefix + strconv.FormatUint(n, 10) + "-" + uuid.NewString()
}

//nolint:gochecknoglobals // Shared counter; see IDSource.
var defaultIDs IDSource
