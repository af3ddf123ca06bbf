package crucible

import (
	"container/heap"
)

// frontier is the set of discovered, unsettled states keyed by tentative
// distance. Implementations use lazy deletion: a state may be pushed several
// times and the runner discards entries whose state is already settled.
type frontier interface {
	push(idx int, dist int64)
	pop() (idx int, dist int64, ok bool)
	Len() int
}

// nodeItem represents a state index and its tentative distance.
// seq breaks distance ties in insertion order, keeping pops deterministic.
type nodeItem struct {
	idx  int
	dist int64
	seq  uint64
}

// nodePQ is a min-heap of nodeItem ordered by (dist, seq).
type nodePQ []nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push is called by heap.Push; x must be a nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(nodeItem)) }

// Pop is called by heap.Pop and removes the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// heapFrontier adapts nodePQ to the frontier interface.
type heapFrontier struct {
	pq  nodePQ
	seq uint64
}

func newHeapFrontier(capacity int) *heapFrontier {
	return &heapFrontier{pq: make(nodePQ, 0, capacity)}
}

func (f *heapFrontier) push(idx int, dist int64) {
	f.seq++
	heap.Push(&f.pq, nodeItem{idx: idx, dist: dist, seq: f.seq})
}

func (f *heapFrontier) pop() (int, int64, bool) {
	if f.pq.Len() == 0 {
		return 0, 0, false
	}
	item := heap.Pop(&f.pq).(nodeItem)

	return item.idx, item.dist, true
}

func (f *heapFrontier) Len() int { return f.pq.Len() }

// bucketFrontier is Dial's bucket queue. With every edge weight in
// [0, maxWeight], all pending distances lie in [cur, cur+maxWeight], so a
// ring of maxWeight+1 FIFO buckets indexed by dist mod span is enough.
// Pushed distances must never be below the last popped distance.
type bucketFrontier struct {
	buckets [][]nodeItem
	heads   []int
	cur     int64
	n       int
}

func newBucketFrontier(maxWeight int) *bucketFrontier {
	span := maxWeight + 1

	return &bucketFrontier{
		buckets: make([][]nodeItem, span),
		heads:   make([]int, span),
	}
}

func (f *bucketFrontier) slot(dist int64) int {
	return int(dist % int64(len(f.buckets)))
}

func (f *bucketFrontier) push(idx int, dist int64) {
	k := f.slot(dist)
	f.buckets[k] = append(f.buckets[k], nodeItem{idx: idx, dist: dist})
	f.n++
}

func (f *bucketFrontier) pop() (int, int64, bool) {
	if f.n == 0 {
		return 0, 0, false
	}
	k := f.slot(f.cur)
	for f.heads[k] == len(f.buckets[k]) {
		f.cur++
		k = f.slot(f.cur)
	}
	item := f.buckets[k][f.heads[k]]
	f.heads[k]++
	if f.heads[k] == len(f.buckets[k]) {
		// bucket drained; reuse its storage
		f.buckets[k] = f.buckets[k][:0]
		f.heads[k] = 0
	}
	f.n--

	return item.idx, item.dist, true
}

func (f *bucketFrontier) Len() int { return f.n }
