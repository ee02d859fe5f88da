package store

// Rooms is the room membership index. A connection is a member of at
// most one room at a time; joining a second room leaves the first.
type Rooms struct {
	members map[string]map[string]struct{} // roomID -> set of connIDs
	current map[string]string              // connID -> roomID
}

// NewRooms creates an empty membership index.
func NewRooms() *Rooms {
	return &Rooms{
		members: make(map[string]map[string]struct{}),
		current: make(map[string]string),
	}
}

// Join adds the connection to roomID, removing it from its previous
// room first. It returns the previous room id, or "" if there was none.
// Re-joining the current room returns "" (nothing left to clean up).
func (r *Rooms) Join(connID, roomID string) (previous string) {
	prev, ok := r.current[connID]
	if ok && prev == roomID {
		return ""
	}
	if ok {
		r.removeMember(prev, connID)
		previous = prev
	}

	if _, ok := r.members[roomID]; !ok {
		r.members[roomID] = make(map[string]struct{})
	}
	r.members[roomID][connID] = struct{}{}
	r.current[connID] = roomID
	return previous
}

// Leave removes the connection from whichever room it was in and
// returns that room id, or "" if it was in none.
func (r *Rooms) Leave(connID string) string {
	roomID, ok := r.current[connID]
	if !ok {
		return ""
	}
	r.removeMember(roomID, connID)
	delete(r.current, connID)
	return roomID
}

// RoomOf returns the connection's current room, or "".
func (r *Rooms) RoomOf(connID string) string {
	return r.current[connID]
}

// MembersOf returns the member connection ids of a room. The returned
// slice is a copy; order is not defined.
func (r *Rooms) MembersOf(roomID string) []string {
	set, ok := r.members[roomID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// SizeOf returns the number of members in a room.
func (r *Rooms) SizeOf(roomID string) int {
	return len(r.members[roomID])
}

func (r *Rooms) removeMember(roomID, connID string) {
	set, ok := r.members[roomID]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(r.members, roomID)
	}
}
