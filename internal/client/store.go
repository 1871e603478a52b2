package client

import (
	"sync"

	"github.com/dugout-tcg/client/internal/game"
)

// SnapshotStore holds the single authoritative game snapshot. Each
// server push replaces the stored snapshot atomically and bumps the
// version; fields are never merged, so readers can never observe a
// torn mix of old and new state.
type SnapshotStore struct {
	mu      sync.RWMutex
	snap    *game.GameSnapshot
	version int
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Apply replaces the stored snapshot wholesale.
func (s *SnapshotStore) Apply(snap *game.GameSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.version++
}

// Snapshot returns the current snapshot, or nil before the first push.
func (s *SnapshotStore) Snapshot() *game.GameSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Version counts applied snapshots.
func (s *SnapshotStore) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ProjectMine derives the viewing player's side. In player mode the
// session id selects the side; a spectator (whose session id matches
// no player) sees the first player in sorted-id order as "mine".
func (s *SnapshotStore) ProjectMine(sessionID string) *game.PlayerState {
	mine, _ := s.project(sessionID)
	return mine
}

// ProjectOpponent derives the other side, mirroring ProjectMine.
func (s *SnapshotStore) ProjectOpponent(sessionID string) *game.PlayerState {
	_, opp := s.project(sessionID)
	return opp
}

func (s *SnapshotStore) project(sessionID string) (mine, opp *game.PlayerState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, nil
	}

	ids := s.snap.PlayerIDs()
	if p := s.snap.Players[sessionID]; p != nil {
		for _, id := range ids {
			if id != sessionID {
				return p, s.snap.Players[id]
			}
		}
		return p, nil
	}

	// Spectator mode: positional ordering, no session-based ownership.
	if len(ids) == 0 {
		return nil, nil
	}
	mine = s.snap.Players[ids[0]]
	if len(ids) > 1 {
		opp = s.snap.Players[ids[1]]
	}
	return mine, opp
}

// IsMyTurn reports whether the session's player currently owes the
// server input: their main phase, or a resolution phase waiting on
// them.
func (s *SnapshotStore) IsMyTurn(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return false
	}
	switch s.snap.Phase {
	case game.PhaseMain:
		return s.snap.ActivePlayerID == sessionID
	case game.PhaseResolution:
		return s.snap.PlayerInResolution == sessionID
	}
	return false
}

// InResolution reports whether the game sits in the resolution
// sub-phase.
func (s *SnapshotStore) InResolution() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil && s.snap.Phase == game.PhaseResolution
}

// OwnerOf maps a player id to a side relative to the viewing session.
func (s *SnapshotStore) OwnerOf(sessionID, playerID string) game.Owner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return game.OwnerOpponent
	}
	if playerID == sessionID {
		return game.OwnerMine
	}
	// Spectators fall back to positional ordering.
	if s.snap.Players[sessionID] == nil {
		ids := s.snap.PlayerIDs()
		if len(ids) > 0 && ids[0] == playerID {
			return game.OwnerMine
		}
	}
	return game.OwnerOpponent
}
