package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTargetRef(t *testing.T) {
	cases := []struct {
		tok  string
		want TargetRef
	}{
		{"my_bench", TargetRef{Owner: OwnerMine, Zone: ZoneBench}},
		{"opponent_active", TargetRef{Owner: OwnerOpponent, Zone: ZoneActive}},
		{"my_support", TargetRef{Owner: OwnerMine, Zone: ZoneSupport}},
		// Anything that is not a well-formed zone token is an instance id,
		// including ids that happen to contain underscores.
		{"inst-42", TargetRef{InstanceID: "inst-42"}},
		{"my_hand", TargetRef{InstanceID: "my_hand"}},
		{"their_bench", TargetRef{InstanceID: "their_bench"}},
		{"card_ab12", TargetRef{InstanceID: "card_ab12"}},
	}

	for _, tc := range cases {
		t.Run(tc.tok, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTargetRef(tc.tok))
		})
	}
}

func TestTargetSetMatching(t *testing.T) {
	set := ParseTargetSet([]string{"opponent_active", "inst-7"})

	assert.True(t, set.AllowsInstance("inst-7"))
	assert.False(t, set.AllowsInstance("inst-8"))
	assert.False(t, set.AllowsInstance(""), "empty id never matches")

	assert.True(t, set.AllowsZone(OwnerOpponent, ZoneActive))
	assert.False(t, set.AllowsZone(OwnerMine, ZoneActive))
	assert.False(t, set.AllowsZone(OwnerOpponent, ZoneBench))

	// AllowsCard resolves both shapes through one check.
	assert.True(t, set.AllowsCard("inst-7", OwnerMine, ZoneBench), "by instance id")
	assert.True(t, set.AllowsCard("other", OwnerOpponent, ZoneActive), "by zone token")
	assert.False(t, set.AllowsCard("other", OwnerMine, ZoneBench))

	assert.True(t, TargetSet(nil).Empty())
	assert.False(t, set.Empty())
}
