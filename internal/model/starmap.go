package model

import (
	"container/list"
	"encoding/json"

	"github.com/ec4x/engine/internal/ids"
)

// LaneClass is the closed set of jump-lane classifications (spec §3).
type LaneClass int

const (
	Major LaneClass = iota
	Minor
	Restricted
)

// Lane is one undirected edge of the star map.
type Lane struct {
	A, B  ids.SystemId
	Class LaneClass
}

// StarMap is the undirected graph of systems connected by jump lanes.
// Grounded on the teacher's universe.go (oglike_server/internal/model
// /universe.go and oglike_server/internal/game/universe.go), which
// plays the analogous role of "the thing fleets traverse between
// coordinates" for OGame's 3-axis coordinate system; EC4X's map is a
// graph rather than a coordinate space, per spec §3.
type StarMap struct {
	systems   map[ids.SystemId]bool
	adjacency map[ids.SystemId][]Lane
}

// NewStarMap builds an empty map.
func NewStarMap() *StarMap {
	return &StarMap{
		systems:   make(map[ids.SystemId]bool),
		adjacency: make(map[ids.SystemId][]Lane),
	}
}

// AddSystem registers a system node.
func (m *StarMap) AddSystem(id ids.SystemId) {
	m.systems[id] = true
	if _, ok := m.adjacency[id]; !ok {
		m.adjacency[id] = nil
	}
}

// AddLane registers an undirected lane between two systems.
func (m *StarMap) AddLane(a, b ids.SystemId, class LaneClass) {
	m.AddSystem(a)
	m.AddSystem(b)
	m.adjacency[a] = append(m.adjacency[a], Lane{A: a, B: b, Class: class})
	m.adjacency[b] = append(m.adjacency[b], Lane{A: b, B: a, Class: class})
}

// Neighbors returns every lane leaving `from`.
func (m *StarMap) Neighbors(from ids.SystemId) []Lane {
	return m.adjacency[from]
}

// Diameter is an upper bound on any shortest path length, used to cap
// pathfinding search per spec §5 ("implementations cap path search
// length by map diameter"). It is recomputed lazily and cheaply: the
// number of systems is always a safe (if loose) bound on any simple
// path's edge count.
func (m *StarMap) Diameter() int {
	return len(m.systems)
}

// TraverserCapabilities describes what a fleet attempting to use a
// Restricted lane brings with it; ShortestPath rejects a path over a
// Restricted lane unless the traverser satisfies the restriction
// (spec §4.2: "restricted lanes reject fleets containing crippled
// ships or Expansion/Auxiliary squadrons").
type TraverserCapabilities struct {
	HasCrippledShips       bool
	HasExpansionOrAuxiliary bool
}

// allowsRestricted reports whether this traverser may use a
// Restricted lane.
func (t TraverserCapabilities) allowsRestricted() bool {
	return !t.HasCrippledShips && !t.HasExpansionOrAuxiliary
}

// ShortestPath finds a shortest sequence of systems from `from` to
// `to` (inclusive of both ends) that the given traverser may legally
// use, using breadth-first search bounded by the map's diameter.
// Returns (nil, false) if no legal path exists.
func (m *StarMap) ShortestPath(from, to ids.SystemId, traverser TraverserCapabilities) ([]ids.SystemId, bool) {
	if from == to {
		return []ids.SystemId{from}, true
	}

	visited := map[ids.SystemId]bool{from: true}
	prev := map[ids.SystemId]ids.SystemId{}

	queue := list.New()
	queue.PushBack(from)

	bound := m.Diameter() + 1

	for steps := 0; queue.Len() > 0 && steps <= bound*bound; steps++ {
		front := queue.Front()
		queue.Remove(front)
		cur := front.Value.(ids.SystemId)

		for _, lane := range m.Neighbors(cur) {
			if lane.Class == Restricted && !traverser.allowsRestricted() {
				continue
			}
			if visited[lane.B] {
				continue
			}
			visited[lane.B] = true
			prev[lane.B] = cur

			if lane.B == to {
				return reconstructPath(prev, from, to), true
			}
			queue.PushBack(lane.B)
		}
	}

	return nil, false
}

func reconstructPath(prev map[ids.SystemId]ids.SystemId, from, to ids.SystemId) []ids.SystemId {
	path := []ids.SystemId{to}
	cur := to
	for cur != from {
		cur = prev[cur]
		path = append(path, cur)
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// LaneBetween returns the lane classification directly connecting a
// and b, if adjacent.
func (m *StarMap) LaneBetween(a, b ids.SystemId) (LaneClass, bool) {
	for _, lane := range m.adjacency[a] {
		if lane.B == b {
			return lane.Class, true
		}
	}
	return 0, false
}

// starMapSnapshot is StarMap's serializable shape: a system list plus
// each undirected lane stored once (A < B), re-expanded into both
// adjacency directions on load by AddLane.
type starMapSnapshot struct {
	Systems []ids.SystemId `json:"systems"`
	Lanes   []Lane         `json:"lanes"`
}

func (m *StarMap) MarshalJSON() ([]byte, error) {
	snap := starMapSnapshot{}
	for s := range m.systems {
		snap.Systems = append(snap.Systems, s)
	}
	seen := map[Lane]bool{}
	for _, lanes := range m.adjacency {
		for _, l := range lanes {
			a, b := l.A, l.B
			if a > b {
				a, b = b, a
			}
			key := Lane{A: a, B: b, Class: l.Class}
			if seen[key] {
				continue
			}
			seen[key] = true
			snap.Lanes = append(snap.Lanes, key)
		}
	}
	return json.Marshal(snap)
}

func (m *StarMap) UnmarshalJSON(data []byte) error {
	var snap starMapSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	*m = *NewStarMap()
	for _, s := range snap.Systems {
		m.AddSystem(s)
	}
	for _, l := range snap.Lanes {
		m.AddLane(l.A, l.B, l.Class)
	}
	return nil
}
