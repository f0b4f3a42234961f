package project

import "strconv"

// ID is a stable handle to an entity owned by a Project. The low 32 bits hold
// the arena slot (1-based) and the high 32 bits the slot generation, so a
// handle to a removed entity never resolves to whatever reuses its slot.
type ID uint64

const idSlotBits = 32

func makeID(slot, gen uint32) ID {
	return ID(uint64(gen)<<idSlotBits | uint64(slot))
}

func (id ID) slot() uint32 {
	return uint32(id)
}

func (id ID) generation() uint32 {
	return uint32(uint64(id) >> idSlotBits)
}

// Valid reports whether id could name an entity. The zero ID means "none".
func (id ID) Valid() bool {
	return id.slot() != 0
}

func (id ID) String() string {
	if !id.Valid() {
		return "none"
	}
	return strconv.FormatUint(uint64(id.slot()), 10) + "." + strconv.FormatUint(uint64(id.generation()), 10)
}

// idStore tracks slot generations and free slots.
type idStore struct {
	gen  []uint32
	free []uint32
}

func (s *idStore) create() ID {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		slot = uint32(len(s.gen))
	}
	return makeID(slot, s.gen[slot-1])
}

func (s *idStore) destroy(id ID) {
	if !s.alive(id) {
		return
	}
	s.gen[id.slot()-1]++
	s.free = append(s.free, id.slot())
}

func (s *idStore) alive(id ID) bool {
	slot := id.slot()
	if slot == 0 || int(slot) > len(s.gen) {
		return false
	}
	return s.gen[slot-1] == id.generation()
}
