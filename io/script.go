package io

// Script is an in-memory Input that replays queued key edges.
// Each Poll consumes one batch; an empty queue yields no edges.
type Script struct {
	Batches [][]KeyEdge
	Polls   int // Number of Poll calls.
}

var _ Input = (*Script)(nil)

// Press queues a batch holding a single key-down edge.
func (sc *Script) Press(key uint8) {
	sc.Batches = append(sc.Batches, []KeyEdge{{Key: key, Down: true}})
}

// Release queues a batch holding a single key-up edge.
func (sc *Script) Release(key uint8) {
	sc.Batches = append(sc.Batches, []KeyEdge{{Key: key, Down: false}})
}

// Idle queues polls that yield nothing.
func (sc *Script) Idle(polls int) {
	for range polls {
		sc.Batches = append(sc.Batches, nil)
	}
}

// Poll returns the next batch of edges.
func (sc *Script) Poll() (edges []KeyEdge) {
	sc.Polls++
	if len(sc.Batches) == 0 {
		return
	}
	edges = sc.Batches[0]
	sc.Batches = sc.Batches[1:]
	return
}
