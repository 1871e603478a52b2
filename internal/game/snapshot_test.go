package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInstance(t *testing.T) {
	snap, me, opp := twoPlayerSnapshot(PhaseMain)
	inHand := playerCard("in-hand")
	onBench := playerCard("on-bench")
	attached := itemCard("attached", "my_bench")
	onBench.AttachedItems = []*CardInstance{attached}
	oppActive := playerCard("opp-active")
	discarded := playerCard("discarded")

	me.Hand = []*CardInstance{inHand}
	me.Bench[2] = onBench
	opp.ActiveCard = oppActive
	opp.Discard = []*CardInstance{discarded}

	cases := []struct {
		id       string
		playerID string
		zone     ZoneKind
		index    int
	}{
		{"in-hand", "p1", ZoneHand, 0},
		{"on-bench", "p1", ZoneBench, 2},
		{"attached", "p1", ZoneBench, 2}, // attachments resolve to the host slot
		{"opp-active", "p2", ZoneActive, -1},
		{"discarded", "p2", ZoneDiscard, 0},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			card, loc, ok := snap.FindInstance(tc.id)
			require.True(t, ok)
			assert.Equal(t, tc.id, card.InstanceID)
			assert.Equal(t, tc.playerID, loc.PlayerID)
			assert.Equal(t, tc.zone, loc.Zone)
			assert.Equal(t, tc.index, loc.Index)
		})
	}

	// Stale references report not-found instead of misbehaving.
	_, _, ok := snap.FindInstance("destroyed-long-ago")
	assert.False(t, ok)
	_, _, ok = snap.FindInstance("")
	assert.False(t, ok)

	var nilSnap *GameSnapshot
	_, _, ok = nilSnap.FindInstance("in-hand")
	assert.False(t, ok)
}

func TestPlayerIDsSorted(t *testing.T) {
	snap := &GameSnapshot{Players: map[string]*PlayerState{
		"zz": {SessionID: "zz"},
		"aa": {SessionID: "aa"},
		"mm": {SessionID: "mm"},
	}}
	assert.Equal(t, []string{"aa", "mm", "zz"}, snap.PlayerIDs())
}

func TestPlayerStateHelpers(t *testing.T) {
	p := &PlayerState{SessionID: "p1"}
	assert.Nil(t, p.TopDiscard())
	assert.Equal(t, 0, p.BenchCount())
	assert.Equal(t, 0, p.FreeBenchSlot())

	top := playerCard("top")
	p.Discard = []*CardInstance{top, playerCard("under")}
	assert.Same(t, top, p.TopDiscard())

	p.Bench[0] = playerCard("a")
	p.Bench[1] = playerCard("b")
	assert.Equal(t, 2, p.BenchCount())
	assert.Equal(t, 2, p.FreeBenchSlot())

	p.Bench[2] = playerCard("c")
	p.Bench[3] = playerCard("d")
	assert.Equal(t, -1, p.FreeBenchSlot())
}

func TestPromptChoiceHelpers(t *testing.T) {
	p := &PromptChoice{ChoiceType: ChoiceTarget, Phase: 2, Options: []string{"c1", "c2"}}
	assert.True(t, p.AllowsOption("c2"))
	assert.False(t, p.AllowsOption("c3"))
	assert.False(t, p.ViewOnly())

	reveal := &PromptChoice{ChoiceType: ChoicePileSelection, Title: "Opponent's hand"}
	assert.True(t, reveal.ViewOnly())
}
