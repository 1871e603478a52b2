package game

// CanDrop decides whether the dragged card may be dropped on the given
// zone of the given side. Pure and deterministic: it never mutates its
// arguments and performs no I/O. The server remains the authority on
// legality; this only filters out drops that could never be valid so
// no request is sent for them.
func CanDrop(dragged *CardInstance, zone DropZone, owner *PlayerState, snap *GameSnapshot) bool {
	if dragged == nil || owner == nil || snap == nil {
		return false
	}

	switch zone.Zone {
	case ZoneBench:
		if zone.Index < 0 || zone.Index >= BenchSize {
			return false
		}
		host := owner.Bench[zone.Index]
		switch dragged.CardType {
		case CardTypeItem:
			// Items attach to an occupied slot the item declares valid,
			// either by the host's instance id or by zone token.
			if host == nil {
				return false
			}
			return ParseTargetSet(dragged.ValidTargets).AllowsCard(host.InstanceID, zone.Owner, ZoneBench)
		case CardTypePlayer:
			// Player cards bench only onto one's own empty slots, and
			// never during setup (setup placement goes to the active slot).
			return host == nil && snap.Phase != PhaseSetup && zone.Owner == OwnerMine
		}
		return false

	case ZoneActive:
		switch dragged.CardType {
		case CardTypeItem:
			if owner.ActiveCard == nil {
				return false
			}
			return ParseTargetSet(dragged.ValidTargets).AllowsCard(owner.ActiveCard.InstanceID, zone.Owner, ZoneActive)
		case CardTypePlayer:
			// Never onto the opponent's slot.
			if zone.Owner != OwnerMine {
				return false
			}
			if snap.Phase == PhaseSetup {
				return true
			}
			return snap.Phase == PhaseMain &&
				snap.ActivePlayerID == owner.SessionID &&
				owner.ActiveCard == nil
		}
		return false

	case ZoneSupport:
		// A new support replaces the old, so occupancy doesn't matter.
		if dragged.CardType != CardTypeBase && dragged.CardType != CardTypeTeam {
			return false
		}
		return snap.Phase == PhaseMain
	}

	return false
}
