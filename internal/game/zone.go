package game

import (
	"fmt"
	"strconv"
	"strings"
)

// DropZone is a parsed drop target id. The draggable surface tags its
// drop targets with ids of the form "<owner>-<zone>[-<index>]", e.g.
// "my-bench-2" or "opponent-active-card"; this is the boundary
// contract between the drag layer and the drop rules.
type DropZone struct {
	Owner Owner
	Zone  ZoneKind
	Index int // bench slot index; -1 for active and support
}

// ParseDropZone parses a drop target id. Bench ids carry a slot
// index; active and support ids may carry a trailing "card" segment,
// which is accepted and ignored.
func ParseDropZone(id string) (DropZone, error) {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return DropZone{}, fmt.Errorf("drop zone %q: want <owner>-<zone>[-<index>]", id)
	}

	owner := Owner(parts[0])
	if owner != OwnerMine && owner != OwnerOpponent {
		return DropZone{}, fmt.Errorf("drop zone %q: unknown owner %q", id, parts[0])
	}

	zone := ZoneKind(parts[1])
	switch zone {
	case ZoneBench:
		if len(parts) != 3 {
			return DropZone{}, fmt.Errorf("drop zone %q: bench needs a slot index", id)
		}
		idx, err := strconv.Atoi(parts[2])
		if err != nil || idx < 0 || idx >= BenchSize {
			return DropZone{}, fmt.Errorf("drop zone %q: bad bench index %q", id, parts[2])
		}
		return DropZone{Owner: owner, Zone: zone, Index: idx}, nil

	case ZoneActive, ZoneSupport:
		if len(parts) == 3 && parts[2] != "card" {
			return DropZone{}, fmt.Errorf("drop zone %q: unexpected suffix %q", id, parts[2])
		}
		if len(parts) > 3 {
			return DropZone{}, fmt.Errorf("drop zone %q: too many segments", id)
		}
		return DropZone{Owner: owner, Zone: zone, Index: -1}, nil
	}
	return DropZone{}, fmt.Errorf("drop zone %q: unknown zone %q", id, parts[1])
}

// String formats the zone back into its surface id.
func (z DropZone) String() string {
	if z.Zone == ZoneBench {
		return fmt.Sprintf("%s-%s-%d", z.Owner, z.Zone, z.Index)
	}
	return fmt.Sprintf("%s-%s-card", z.Owner, z.Zone)
}

// SlotCard returns the card currently occupying the zone on the given
// side, or nil for an empty slot.
func (z DropZone) SlotCard(owner *PlayerState) *CardInstance {
	if owner == nil {
		return nil
	}
	switch z.Zone {
	case ZoneBench:
		if z.Index < 0 || z.Index >= BenchSize {
			return nil
		}
		return owner.Bench[z.Index]
	case ZoneActive:
		return owner.ActiveCard
	case ZoneSupport:
		return owner.SupportCard
	}
	return nil
}
