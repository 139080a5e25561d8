// Package reuse implements the image selection queue: a stateful cycler
// over a finite pool that balances reuse when demand exceeds pool size.
package reuse

import (
	"errors"
	"math/rand"
)

// ErrEmptyPool is returned by New when the scanned image pool is empty.
// An empty pool is a fatal configuration error; the queue cannot satisfy
// any demand.
var ErrEmptyPool = errors.New("image pool is empty")

// Queue emits image references from a fixed pool without starvation. It
// consumes a shuffled pending list front-to-back and refills it with a
// fresh, independent shuffle of the full pool on exhaustion. Within one
// unbroken pass no reference repeats; across a refill boundary the same
// reference may appear twice in a row (refills preserve no continuity
// with the previous ordering).
//
// Not safe for concurrent use. The scheduler drains it fully before any
// parallel work starts.
type Queue struct {
	pool    []string
	pending []string
	rng     *rand.Rand
}

// New creates a queue over pool using rng for every shuffle. Injecting the
// random source makes frame-to-image assignment reproducible under a fixed
// seed. The pool slice is copied; the caller may reuse it.
func New(pool []string, rng *rand.Rand) (*Queue, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	q := &Queue{
		pool: append([]string(nil), pool...),
		rng:  rng,
	}
	q.refill()
	return q, nil
}

// Next returns exactly k references, refilling mid-request whenever the
// pending list runs out.
func (q *Queue) Next(k int) []string {
	out := make([]string, 0, k)
	for len(out) < k {
		if len(q.pending) == 0 {
			q.refill()
		}
		out = append(out, q.pending[0])
		q.pending = q.pending[1:]
	}
	return out
}

// PoolSize returns the number of distinct references in the pool.
func (q *Queue) PoolSize() int { return len(q.pool) }

func (q *Queue) refill() {
	next := append([]string(nil), q.pool...)
	q.rng.Shuffle(len(next), func(i, j int) {
		next[i], next[j] = next[j], next[i]
	})
	q.pending = next
}
