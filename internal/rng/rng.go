// Package rng is the deterministic RNG service (spec §2 C4, §5 "RNG").
// A master stream is seeded once per turn; surveillance, espionage, and
// combat each draw from their own derived sub-stream so that adding a
// roll to one concern never perturbs another's sequence.
//
// The teacher has no equivalent (oglike_server never needed
// reproducible randomness), so this package is grounded directly on
// spec §5's mixing rule rather than adapted from teacher code.
package rng

import (
	"hash/fnv"
	"math/rand"

	"github.com/ec4x/engine/internal/ids"
)

// Service owns the master stream for one resolve_turn call and vends
// derived sub-streams on demand. It holds no state beyond the turn's
// lifetime (spec §9, "Scoped resources").
type Service struct {
	turn   int
	master *rand.Rand
}

// New seeds the master stream from the 64-bit turn seed (spec §4:
// "seed is a 64-bit integer; for normal play seed = state.turn").
func New(turn int, seed int64) *Service {
	return &Service{
		turn:   turn,
		master: rand.New(rand.NewSource(seed)),
	}
}

// Stream kind tags used only to salt the derived seed; they do not
// appear in saved state.
type streamKind byte

const (
	streamSurveillance streamKind = iota
	streamEspionage
	streamCombat
)

func mix(turn int, kind streamKind, house ids.HouseId, system ids.SystemId) int64 {
	h := fnv.New64a()
	var buf [1 + 4 + 4]byte
	buf[0] = byte(kind)
	buf[1] = byte(house)
	buf[2] = byte(house >> 8)
	buf[3] = byte(house >> 16)
	buf[4] = byte(house >> 24)
	buf[5] = byte(system)
	buf[6] = byte(system >> 8)
	buf[7] = byte(system >> 16)
	buf[8] = byte(system >> 24)
	h.Write(buf[:])
	return int64(turn) ^ int64(h.Sum64())
}

// Surveillance returns the sub-stream for a surveillance roll against
// the given house in the given system (spec E4's scout-detection
// check).
func (s *Service) Surveillance(house ids.HouseId, system ids.SystemId) *rand.Rand {
	return rand.New(rand.NewSource(mix(s.turn, streamSurveillance, house, system)))
}

// Espionage returns the sub-stream for an espionage action targeting
// the given house in the given system.
func (s *Service) Espionage(house ids.HouseId, system ids.SystemId) *rand.Rand {
	return rand.New(rand.NewSource(mix(s.turn, streamEspionage, house, system)))
}

// Combat returns the sub-stream for combat sub-rolls (rapid-fire,
// tie-breaks not otherwise fixed by the deterministic ordering rule)
// in the given system.
func (s *Service) Combat(system ids.SystemId) *rand.Rand {
	return rand.New(rand.NewSource(mix(s.turn, streamCombat, 0, system)))
}

// Master exposes the master stream directly for concerns that are
// declared up front to draw from it rather than a derived sub-stream.
func (s *Service) Master() *rand.Rand {
	return s.master
}
