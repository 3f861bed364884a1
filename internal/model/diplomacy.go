package model

import (
	"encoding/json"

	"github.com/ec4x/engine/internal/ids"
)

// DiplomaticState is the closed set of relations one house can
// declare toward another (spec §3, directed).
type DiplomaticState int

const (
	Neutral DiplomaticState = iota
	NonAggression
	Ally
	Hostile
	Enemy
)

func (s DiplomaticState) String() string {
	switch s {
	case Neutral:
		return "Neutral"
	case NonAggression:
		return "NonAggression"
	case Ally:
		return "Ally"
	case Hostile:
		return "Hostile"
	case Enemy:
		return "Enemy"
	}
	return "UnknownDiplomaticState"
}

// Relation is one directed edge of the diplomatic matrix.
type Relation struct {
	State     DiplomaticState
	SinceTurn int
}

// relationKey packs an ordered (from, to) house pair; the matrix is
// directed so (A,B) and (B,A) are distinct keys.
type relationKey struct {
	From, To ids.HouseId
}

// DiplomaticMatrix is a sparse directed map (HouseId,HouseId)->Relation
// (spec §3). Declarations take effect in the Maintenance step of the
// Production phase (spec §4.6 step 5); until then a pending
// declaration is held separately by the command phase.
type DiplomaticMatrix struct {
	relations map[relationKey]Relation
}

// NewDiplomaticMatrix builds an empty matrix; any pair not present is
// implicitly Neutral.
func NewDiplomaticMatrix() *DiplomaticMatrix {
	return &DiplomaticMatrix{relations: make(map[relationKey]Relation)}
}

// Get returns the relation `from` has declared toward `to`, defaulting
// to Neutral if none has been recorded.
func (m *DiplomaticMatrix) Get(from, to ids.HouseId) Relation {
	if from == to {
		return Relation{State: Ally}
	}
	if r, ok := m.relations[relationKey{from, to}]; ok {
		return r
	}
	return Relation{State: Neutral}
}

// Set records `from`'s declared relation toward `to`. Only `from`'s
// row changes — the matrix is directed, so B's posture toward A is
// unaffected by A's posture toward B.
func (m *DiplomaticMatrix) Set(from, to ids.HouseId, state DiplomaticState, turn int) {
	m.relations[relationKey{from, to}] = Relation{State: state, SinceTurn: turn}
}

// MutuallyHostile reports whether either house has declared Enemy or
// Hostile toward the other — the posture the
// Conflict phase uses to decide whether combat occurs in a system
// (spec §4.3: "two or more houses' forces... in a hostile posture").
func (m *DiplomaticMatrix) MutuallyHostile(a, b ids.HouseId) bool {
	ra := m.Get(a, b)
	rb := m.Get(b, a)
	if ra.State == Enemy || rb.State == Enemy {
		return true
	}
	return ra.State == Hostile || rb.State == Hostile
}

// diplomaticEdge is one directed (from, to) relation, the
// serializable shape of a DiplomaticMatrix entry — the matrix's own
// map key (relationKey) is a struct and can't round-trip through JSON
// object keys, so it flattens to an edge list instead.
type diplomaticEdge struct {
	From      ids.HouseId     `json:"from"`
	To        ids.HouseId     `json:"to"`
	State     DiplomaticState `json:"state"`
	SinceTurn int             `json:"since_turn"`
}

func (m *DiplomaticMatrix) MarshalJSON() ([]byte, error) {
	edges := make([]diplomaticEdge, 0, len(m.relations))
	for k, r := range m.relations {
		edges = append(edges, diplomaticEdge{From: k.From, To: k.To, State: r.State, SinceTurn: r.SinceTurn})
	}
	return json.Marshal(edges)
}

func (m *DiplomaticMatrix) UnmarshalJSON(data []byte) error {
	var edges []diplomaticEdge
	if err := json.Unmarshal(data, &edges); err != nil {
		return err
	}
	m.relations = make(map[relationKey]Relation, len(edges))
	for _, e := range edges {
		m.relations[relationKey{e.From, e.To}] = Relation{State: e.State, SinceTurn: e.SinceTurn}
	}
	return nil
}
