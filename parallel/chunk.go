package parallel

import "runtime"

// Range is the half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Chunks splits [0, total) into at most parts contiguous, disjoint ranges of
// at least minSize elements each (the last one may be shorter). parts < 1
// means GOMAXPROCS.
func Chunks(total, parts, minSize int) []Range {
	if total <= 0 {
		return nil
	}
	if parts < 1 {
		parts = runtime.GOMAXPROCS(0)
	}

	size := max((total+parts-1)/parts, minSize, 1)
	ranges := make([]Range, 0, (total+size-1)/size)
	for lo := 0; lo < total; lo += size {
		ranges = append(ranges, Range{Lo: lo, Hi: min(lo+size, total)})
	}
	return ranges
}

// For calls f once for every range of Chunks(total, workers, minSize) and
// returns when all calls are done. A single range runs on the calling
// goroutine, otherwise every range gets its own worker.
func For(workers, total, minSize int, f func(lo, hi int)) {
	ranges := Chunks(total, workers, minSize)
	if len(ranges) < 2 {
		for _, r := range ranges {
			f(r.Lo, r.Hi)
		}
		return
	}

	pool := Start(len(ranges))
	for _, r := range ranges {
		pool.Do(func() {
			f(r.Lo, r.Hi)
		})
	}
	pool.Wait(true)
}
