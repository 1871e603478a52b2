package game

import "strings"

// A TargetRef is one entry of a validTargets list. The server mixes
// two shapes in the same list: explicit instance ids ("inst-42") and
// declarative zone tokens ("my_bench", "opponent_active"). Modeling
// the union explicitly keeps the two from being confused downstream.
type TargetRef struct {
	// InstanceID is set for an explicit-id reference.
	InstanceID string
	// Owner and Zone are set for a declarative zone reference.
	Owner Owner
	Zone  ZoneKind
}

// ByZone reports whether the reference is a declarative zone token.
func (r TargetRef) ByZone() bool { return r.InstanceID == "" }

// ParseTargetRef classifies one validTargets entry. A token is a zone
// reference only when both its owner prefix and zone suffix parse;
// anything else is taken as an instance id.
func ParseTargetRef(tok string) TargetRef {
	owner, zone, ok := splitZoneToken(tok)
	if ok {
		return TargetRef{Owner: owner, Zone: zone}
	}
	return TargetRef{InstanceID: tok}
}

func splitZoneToken(tok string) (Owner, ZoneKind, bool) {
	prefix, suffix, found := strings.Cut(tok, "_")
	if !found {
		return "", "", false
	}
	owner := Owner(prefix)
	if owner != OwnerMine && owner != OwnerOpponent {
		return "", "", false
	}
	zone := ZoneKind(suffix)
	switch zone {
	case ZoneBench, ZoneActive, ZoneSupport:
		return owner, zone, true
	}
	return "", "", false
}

// TargetSet is a parsed validTargets list resolved through one
// matching function.
type TargetSet []TargetRef

// ParseTargetSet parses a raw validTargets list.
func ParseTargetSet(tokens []string) TargetSet {
	set := make(TargetSet, 0, len(tokens))
	for _, tok := range tokens {
		set = append(set, ParseTargetRef(tok))
	}
	return set
}

// AllowsInstance reports whether the set names the instance id
// explicitly.
func (ts TargetSet) AllowsInstance(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range ts {
		if !r.ByZone() && r.InstanceID == id {
			return true
		}
	}
	return false
}

// AllowsZone reports whether the set contains the declarative token
// for the given side and zone.
func (ts TargetSet) AllowsZone(owner Owner, zone ZoneKind) bool {
	for _, r := range ts {
		if r.ByZone() && r.Owner == owner && r.Zone == zone {
			return true
		}
	}
	return false
}

// AllowsCard reports whether a card sitting in the given slot is a
// legal target: either the set names the card's instance id, or it
// names the slot's zone declaratively.
func (ts TargetSet) AllowsCard(instanceID string, owner Owner, zone ZoneKind) bool {
	return ts.AllowsInstance(instanceID) || ts.AllowsZone(owner, zone)
}

// Empty reports whether the set allows nothing.
func (ts TargetSet) Empty() bool { return len(ts) == 0 }
