package solver

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// queueEntry is one partial solution live in the beam (spec.md §4.6): a
// slot-state snapshot, the vertices it has not yet decided, and the
// priority score used to order and trim the queue.
type queueEntry struct {
	state     *State
	uncolored []int
	priority  float64
}

type entryHeap []*queueEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(*queueEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BeamSearch runs the bounded priority-queue constructor (spec.md §4.6) and
// returns the state of the best-scoring leaf (a partial solution with no
// uncolored vertices remaining).
func BeamSearch(initial *State, cfg Config) *State {
	seen, _ := lru.New[string, struct{}](100_000)

	allUncolored := make([]int, len(initial.Sections))
	for i := range allUncolored {
		allUncolored[i] = i
	}

	root := &queueEntry{state: initial, uncolored: allUncolored}
	root.priority = priorityScore(root.state, cfg, root.uncolored)

	q := &entryHeap{root}
	heap.Init(q)

	var bestLeaf *State
	bestPenalty := math.Inf(1)

	for q.Len() > 0 {
		entry := heap.Pop(q).(*queueEntry)

		if len(entry.uncolored) == 0 {
			if p := TotalPenalty(entry.state, cfg); p < bestPenalty {
				bestPenalty, bestLeaf = p, entry.state
			}
			continue
		}

		key := canonicalKey(entry.state, entry.uncolored)
		if _, ok := seen.Get(key); ok {
			continue
		}
		seen.Add(key, struct{}{})

		for _, v := range topVerticesByBVoC(entry.state, cfg, entry.uncolored, cfg.NumVerticesToExpand) {
			choices := TopColorChoices(entry.state, cfg, v, cfg.NumColorsPerVertex)
			if len(choices) == 0 {
				choices = []colorChoice{{Timeslot: NoTimeslot, Room: NoRoom}}
			}

			for _, choice := range choices {
				child := entry.state.Clone()
				child.Assign(v, choice.Timeslot, choice.Room)
				childUncolored := removeVertex(append([]int(nil), entry.uncolored...), v)

				childEntry := &queueEntry{state: child, uncolored: childUncolored}
				childEntry.priority = priorityScore(child, cfg, childUncolored)
				heap.Push(q, childEntry)
			}
		}

		trimToCap(q, cfg.MaxQueueLength)
	}

	if bestLeaf == nil {
		return initial
	}
	return bestLeaf
}

// trimToCap keeps only the cap entries with the smallest priority score.
func trimToCap(q *entryHeap, cap int) {
	if q.Len() <= cap {
		return
	}
	entries := *q
	sort.Slice(entries, func(i, j int) bool { return entries[i].priority < entries[j].priority })
	entries = entries[:cap]
	*q = entries
	heap.Init(q)
}

// priorityScore computes 50·P + 200·B + 5·E + 38·N + 23·BE (spec.md §4.6).
func priorityScore(s *State, cfg Config, uncolored []int) float64 {
	p := TotalPenalty(s, cfg)

	isUncolored := make([]bool, len(s.Sections))
	for _, v := range uncolored {
		isUncolored[v] = true
	}

	var b, e, badEdges float64
	var n int

	for _, v := range uncolored {
		b += BVoC(s, cfg, v)

		for _, edge := range s.Adjacency[v] {
			u := edge.Other
			if u <= v || !isUncolored[u] {
				continue
			}
			weight := float64(SeverityPenalty(edge.Severity))
			e += weight
			n++
			if weight > float64(cfg.ConflictPenaltyThreshold) {
				badEdges++
			} else {
				badEdges += weight / float64(cfg.ConflictPenaltyThreshold)
			}
		}
	}

	return cfg.PriorityPenalty*p + cfg.PriorityBVoC*b + cfg.PriorityEdgeWeight*e +
		cfg.PriorityEdgeCount*float64(n) + cfg.PriorityBadEdges*badEdges
}

// topVerticesByBVoC returns up to n of uncolored's vertices with the
// largest BVoC, ties broken by uncolored's own order.
func topVerticesByBVoC(s *State, cfg Config, uncolored []int, n int) []int {
	ranked := append([]int(nil), uncolored...)
	scores := make(map[int]float64, len(ranked))
	for _, v := range ranked {
		scores[v] = BVoC(s, cfg, v)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return scores[ranked[i]] > scores[ranked[j]] })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// canonicalKey renders the decided portion of a partial solution (every
// vertex not in uncolored) as the sorted "(vertex,timeslot)" string spec.md
// §4.6 uses for duplicate suppression, prefixed with its size so entries of
// different sizes never collide.
func canonicalKey(s *State, uncolored []int) string {
	isUncolored := make([]bool, len(s.Sections))
	for _, v := range uncolored {
		isUncolored[v] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d|", len(s.Sections)-len(uncolored))
	for v := range s.Sections {
		if isUncolored[v] {
			continue
		}
		t, _ := s.Assignment(v)
		fmt.Fprintf(&b, "%d:%d,", v, t)
	}
	return b.String()
}
