package store

import (
	"fmt"

	"github.com/ec4x/engine/internal/ids"
)

// ValidateIndices walks every secondary index and confirms it agrees
// with the primary map in both directions (spec §4.1: "a debug-build
// validator walks every index and asserts it matches the primary
// map"). resolve_turn calls this at end-of-turn; any mismatch is an
// InvariantViolation (spec §7 kind 4) and the engine refuses to
// advance.
func (s *Store) ValidateIndices() error {
	for owner, set := range s.colonyByOwner {
		for cid := range set {
			c, ok := s.colonies[cid]
			if !ok || c.HouseId != owner {
				return fmt.Errorf("colonyByOwner[%d] references missing/mismatched colony %d", owner, cid)
			}
		}
	}
	for _, c := range s.colonies {
		if !s.colonyByOwner[c.HouseId][c.ID] {
			return fmt.Errorf("colony %d missing from colonyByOwner[%d]", c.ID, c.HouseId)
		}
	}

	for owner, set := range s.fleetByOwner {
		for fid := range set {
			f, ok := s.fleets[fid]
			if !ok || f.HouseId != owner {
				return fmt.Errorf("fleetByOwner[%d] references missing/mismatched fleet %d", owner, fid)
			}
		}
	}
	for sys, set := range s.fleetBySystem {
		for fid := range set {
			f, ok := s.fleets[fid]
			if !ok || f.Location != sys {
				return fmt.Errorf("fleetBySystem[%d] references missing/mismatched fleet %d", sys, fid)
			}
		}
	}
	for _, f := range s.fleets {
		if !s.fleetByOwner[f.HouseId][f.ID] {
			return fmt.Errorf("fleet %d missing from fleetByOwner[%d]", f.ID, f.HouseId)
		}
		if !s.fleetBySystem[f.Location][f.ID] {
			return fmt.Errorf("fleet %d missing from fleetBySystem[%d]", f.ID, f.Location)
		}
	}

	for fleet, set := range s.squadronByFleet {
		for sqid := range set {
			if _, ok := s.squadrons[sqid]; !ok {
				return fmt.Errorf("squadronByFleet[%d] references missing squadron %d", fleet, sqid)
			}
		}
	}

	for fleet, set := range s.shipByFleet {
		for shid := range set {
			sh, ok := s.ships[shid]
			if !ok || sh.FleetId != fleet {
				return fmt.Errorf("shipByFleet[%d] references missing/mismatched ship %d", fleet, shid)
			}
		}
	}
	for owner, set := range s.shipByOwner {
		for shid := range set {
			sh, ok := s.ships[shid]
			if !ok || sh.HouseId != owner {
				return fmt.Errorf("shipByOwner[%d] references missing/mismatched ship %d", owner, shid)
			}
		}
	}
	for _, sh := range s.ships {
		if !s.shipByOwner[sh.HouseId][sh.ID] {
			return fmt.Errorf("ship %d missing from shipByOwner[%d]", sh.ID, sh.HouseId)
		}
		if sh.FleetId != 0 {
			if !s.shipByFleet[sh.FleetId][sh.ID] {
				return fmt.Errorf("ship %d missing from shipByFleet[%d]", sh.ID, sh.FleetId)
			}
		}
	}

	// P1: every ship appears in at most one fleet (via squadron
	// membership) and the squadron's fleet-pointer agrees with the
	// ship's own FleetId when it has one.
	seen := map[uint32]ids.FleetId{}
	for fleetID, sqSet := range s.squadronByFleet {
		for sqid := range sqSet {
			sq := s.squadrons[sqid]
			for _, shid := range sq.Ships {
				if prev, dup := seen[uint32(shid)]; dup && prev != fleetID {
					return fmt.Errorf("ship %d appears in both fleet %d and fleet %d", shid, prev, fleetID)
				}
				seen[uint32(shid)] = fleetID
			}
		}
	}

	return nil
}
