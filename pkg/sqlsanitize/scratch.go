package sqlsanitize

import (
	"strings"
	"sync/atomic"
)

// scratchInitialCap is the capacity the two process-wide scratch buffers
// are grown to at startup. Sized for a typical normalized query. The first
// claim of a buffer resets it, which drops that backing array.
const scratchInitialCap = 1000

// scratchSlot guards a single process-wide strings.Builder behind an
// atomic claim flag. At most one caller at a time owns the builder;
// callers that lose the race allocate their own.
type scratchSlot struct {
	inUse atomic.Bool
	buf   strings.Builder
}

var (
	sanitizedScratch scratchSlot
	summaryScratch   scratchSlot
)

func init() {
	sanitizedScratch.buf.Grow(scratchInitialCap)
	summaryScratch.buf.Grow(scratchInitialCap)
}

// claim attempts to take ownership of the shared builder. On success it
// resets the builder (discarding any leftover content together with its
// backing array, which strings returned by an earlier String call still
// share) and returns it along with true. On failure it returns
// a private builder sized proportionally to hint, and false.
func (s *scratchSlot) claim(hint int) (*strings.Builder, bool) {
	if s.inUse.CompareAndSwap(false, true) {
		s.buf.Reset()
		return &s.buf, true
	}
	private := &strings.Builder{}
	private.Grow(hint)
	return private, false
}

// release gives up ownership of the shared builder. It must be called
// exactly once per successful claim, on every exit path.
func (s *scratchSlot) release() {
	s.inUse.Store(false)
}
