package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAndLeave(t *testing.T) {
	r := NewRooms()

	prev := r.Join("c1", "42")
	assert.Equal(t, "", prev)
	assert.Equal(t, "42", r.RoomOf("c1"))
	assert.Equal(t, 1, r.SizeOf("42"))

	r.Join("c2", "42")
	assert.Equal(t, 2, r.SizeOf("42"))
	assert.ElementsMatch(t, []string{"c1", "c2"}, r.MembersOf("42"))

	left := r.Leave("c1")
	assert.Equal(t, "42", left)
	assert.Equal(t, 1, r.SizeOf("42"))
	assert.Equal(t, "", r.RoomOf("c1"))
}

func TestJoinMovesBetweenRooms(t *testing.T) {
	r := NewRooms()

	r.Join("c1", "42")
	prev := r.Join("c1", "99")

	assert.Equal(t, "42", prev)
	assert.Equal(t, "99", r.RoomOf("c1"))
	assert.Equal(t, 0, r.SizeOf("42"))
	assert.Equal(t, 1, r.SizeOf("99"))
}

// A connection is a member of at most one room, no matter the join
// sequence.
func TestMembershipExclusivity(t *testing.T) {
	r := NewRooms()

	rooms := []string{"a", "b", "c", "a", "b"}
	for _, roomID := range rooms {
		r.Join("c1", roomID)

		memberships := 0
		for _, candidate := range []string{"a", "b", "c"} {
			for _, id := range r.MembersOf(candidate) {
				if id == "c1" {
					memberships++
				}
			}
		}
		require.Equal(t, 1, memberships)
	}
}

func TestRejoinSameRoomIsNoMove(t *testing.T) {
	r := NewRooms()

	r.Join("c1", "42")
	prev := r.Join("c1", "42")

	assert.Equal(t, "", prev)
	assert.Equal(t, 1, r.SizeOf("42"))
}

func TestLeaveUnknownConnection(t *testing.T) {
	r := NewRooms()
	assert.Equal(t, "", r.Leave("ghost"))
}

func TestEmptyRoomIsPruned(t *testing.T) {
	r := NewRooms()

	r.Join("c1", "42")
	r.Leave("c1")

	assert.Equal(t, 0, r.SizeOf("42"))
	assert.Nil(t, r.MembersOf("42"))
}
