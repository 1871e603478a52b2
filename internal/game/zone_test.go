package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDropZone(t *testing.T) {
	cases := []struct {
		id      string
		want    DropZone
		wantErr bool
	}{
		{id: "my-bench-2", want: DropZone{Owner: OwnerMine, Zone: ZoneBench, Index: 2}},
		{id: "opponent-bench-0", want: DropZone{Owner: OwnerOpponent, Zone: ZoneBench, Index: 0}},
		{id: "my-active", want: DropZone{Owner: OwnerMine, Zone: ZoneActive, Index: -1}},
		{id: "opponent-active-card", want: DropZone{Owner: OwnerOpponent, Zone: ZoneActive, Index: -1}},
		{id: "my-support-card", want: DropZone{Owner: OwnerMine, Zone: ZoneSupport, Index: -1}},
		{id: "my-bench", wantErr: true},      // bench needs an index
		{id: "my-bench-9", wantErr: true},    // out of range
		{id: "my-bench-x", wantErr: true},    // not a number
		{id: "their-active", wantErr: true},  // unknown owner
		{id: "my-graveyard", wantErr: true},  // unknown zone
		{id: "my-active-2", wantErr: true},   // bad suffix
		{id: "my", wantErr: true},            // too short
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			got, err := ParseDropZone(tc.id)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDropZoneRoundTrip(t *testing.T) {
	for _, z := range []DropZone{
		{Owner: OwnerMine, Zone: ZoneBench, Index: 3},
		{Owner: OwnerOpponent, Zone: ZoneActive, Index: -1},
		{Owner: OwnerMine, Zone: ZoneSupport, Index: -1},
	} {
		parsed, err := ParseDropZone(z.String())
		require.NoError(t, err, z.String())
		assert.Equal(t, z, parsed)
	}
}

func TestDropZoneSlotCard(t *testing.T) {
	p := &PlayerState{SessionID: "p1"}
	bench := playerCard("b")
	active := playerCard("a")
	support := &CardInstance{InstanceID: "s", CardType: CardTypeBase}
	p.Bench[1] = bench
	p.ActiveCard = active
	p.SupportCard = support

	assert.Same(t, bench, DropZone{Owner: OwnerMine, Zone: ZoneBench, Index: 1}.SlotCard(p))
	assert.Nil(t, DropZone{Owner: OwnerMine, Zone: ZoneBench, Index: 0}.SlotCard(p))
	assert.Same(t, active, DropZone{Owner: OwnerMine, Zone: ZoneActive, Index: -1}.SlotCard(p))
	assert.Same(t, support, DropZone{Owner: OwnerMine, Zone: ZoneSupport, Index: -1}.SlotCard(p))
	assert.Nil(t, DropZone{Owner: OwnerMine, Zone: ZoneActive, Index: -1}.SlotCard(nil))
}
