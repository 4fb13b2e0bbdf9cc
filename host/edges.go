package host

import (
	"sync"

	"github.com/ezrec/chip8/io"
)

// edgeQueue hands key edges from a platform goroutine to the machine.
type edgeQueue struct {
	mutex sync.Mutex
	edges []io.KeyEdge
}

// push queues an edge.
func (eq *edgeQueue) push(key uint8, down bool) {
	eq.mutex.Lock()
	eq.edges = append(eq.edges, io.KeyEdge{Key: key, Down: down})
	eq.mutex.Unlock()
}

// drain returns and forgets the queued edges.
func (eq *edgeQueue) drain() (edges []io.KeyEdge) {
	eq.mutex.Lock()
	edges = eq.edges
	eq.edges = nil
	eq.mutex.Unlock()
	return
}
