// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

// Pool is an immutable, ordered set of lookupers. Tasks get their lookuper
// assigned round-robin by their task index, so every Len()-th task reuses the
// same lookuper without any coordination between tasks.
type Pool struct {
	lookupers []Lookuper
}

// NewPool returns a new Pool of the specified lookupers, in the order given.
func NewPool(lookupers ...Lookuper) *Pool {
	return &Pool{lookupers: append([]Lookuper(nil), lookupers...)}
}

// NewPoolFromProbed returns a new Pool of the handles of probed upstreams.
func NewPoolFromProbed(probed []Probed) *Pool {
	lookupers := make([]Lookuper, 0, len(probed))
	for _, p := range probed {
		lookupers = append(lookupers, p.Handle)
	}
	return &Pool{lookupers: lookupers}
}

// Len returns the number of lookupers in the pool.
func (p *Pool) Len() int { return len(p.lookupers) }

// At returns the lookuper assigned to the task with index idx. It panics if
// the pool is empty.
func (p *Pool) At(idx int) Lookuper {
	return p.lookupers[idx%len(p.lookupers)]
}
