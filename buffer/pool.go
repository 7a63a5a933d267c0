package buffer

import (
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("xslua.buffer")

// DefaultRetainCapacity is the largest capacity a Pool keeps by default.
const DefaultRetainCapacity = 1024

// Pool recycles scratch buffers. Buffers handed out by Get are empty; their
// capacity is whatever a previous user left behind. Pool is safe for
// concurrent use.
type Pool struct {
	policy  Policy
	initial int
	retain  int
	pool    sync.Pool
}

// NewPool returns a pool of buffers using policy. New buffers are
// preallocated with initial bytes when initial is positive. Buffers whose
// capacity grew above retain are dropped on Put instead of kept; zero
// selects DefaultRetainCapacity.
func NewPool(policy Policy, initial, retain int) *Pool {
	if retain <= 0 {
		retain = DefaultRetainCapacity
	}
	p := &Pool{policy: policy, initial: initial, retain: retain}
	p.pool.New = func() any {
		b := New(p.policy)
		if p.initial > 0 {
			if err := b.realloc("pool", p.initial, false); err != nil {
				log.Warningf("pool: cannot preallocate %d bytes: %s", p.initial, err)
			}
		}
		return b
	}
	return p
}

// Policy returns the policy of pooled buffers.
func (p *Pool) Policy() Policy { return p.policy }

// Get returns an empty buffer.
func (p *Pool) Get() *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Clear()
	return b
}

// Put returns b to the pool. The caller must not use b afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	if b.Cap() > p.retain {
		log.Debugf("pool: dropping buffer with capacity %d (retain %d)", b.Cap(), p.retain)
		return
	}
	b.policy = p.policy
	p.pool.Put(b)
}
