package room

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// Rooms with no read or write for this long are swept away.
	TTL = 30 * time.Minute

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength   = 4

	// Per-subscriber channel buffer. A subscriber that falls this far
	// behind starts losing intermediate snapshots, which is fine: every
	// event carries the full state, so the latest one wins.
	subscriberBuffer = 8
)

// Hub owns all room state for the process: the code-keyed room map,
// the per-room subscriber sets, and the TTL sweep. All methods are
// safe for concurrent use; the lock is held for the duration of each
// logical operation so per-room updates stay totally ordered.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*State
	subs  map[string]*subscriberSet

	// nextSubID is hub-global so an id is never reused, even after a
	// room's emptied subscriber set is deleted and recreated. A stale
	// unsubscribe then misses in the new set instead of hitting
	// someone else's registration.
	nextSubID uint64
}

// subscriberSet tracks the live subscribers of one room. IDs increase
// monotonically so delivery can follow subscription order.
type subscriberSet struct {
	chans map[uint64]chan *State
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]*State),
		subs:  make(map[string]*subscriberSet),
	}
}

// Create sweeps expired rooms, allocates a fresh unique code and
// stores a room with default state. Returns a snapshot.
func (h *Hub) Create() *State {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sweepExpiredLocked(time.Now())

	code := h.generateCodeLocked()
	now := time.Now().UnixMilli()
	st := &State{
		Code:            code,
		Controllers:     []string{},
		AutoScrollSpeed: 1,
		CreatedAt:       now,
		LastActivity:    now,
	}
	h.rooms[code] = st
	return st.clone()
}

// generateCodeLocked draws random codes until one is free. With 26^4
// combinations collisions are rare, but the loop is unconditional so
// uniqueness holds even with many active rooms.
func (h *Hub) generateCodeLocked() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := h.rooms[code]; !taken {
			return code
		}
	}
}

// Get sweeps expired rooms, then looks up the room by its
// case-insensitive code. A hit refreshes the room's lease.
func (h *Hub) Get(code string) (*State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sweepExpiredLocked(time.Now())

	st, ok := h.rooms[normalizeCode(code)]
	if !ok {
		return nil, false
	}
	st.LastActivity = time.Now().UnixMilli()
	return st.clone(), true
}

// Update merges a patch into the room's state, refreshes the lease and
// notifies every subscriber with the resulting snapshot. Looks the room
// up directly rather than through Get, so it neither sweeps nor extends
// the lease twice. Returns false without side effects if the room is gone.
func (h *Hub) Update(code string, patch Patch) (*State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.rooms[normalizeCode(code)]
	if !ok {
		return nil, false
	}

	st.apply(patch)
	st.LastActivity = time.Now().UnixMilli()

	snap := st.clone()
	h.publishLocked(st.Code, snap)
	return snap, true
}

// Delete removes a room unconditionally and reports whether it existed.
// Open subscriptions are left untouched; they keep their last snapshot
// and die with their connection.
func (h *Hub) Delete(code string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	code = normalizeCode(code)
	_, ok := h.rooms[code]
	delete(h.rooms, code)
	return ok
}

// Subscribe registers a subscriber for every future snapshot of the
// given room. Returns the delivery channel and an unsubscribe function
// that is safe to call more than once. Subscribers do not receive the
// current state; callers emit that themselves before subscribing.
func (h *Hub) Subscribe(code string) (<-chan *State, func()) {
	ch := make(chan *State, subscriberBuffer)
	code = normalizeCode(code)

	h.mu.Lock()
	set, ok := h.subs[code]
	if !ok {
		set = &subscriberSet{chans: make(map[uint64]chan *State)}
		h.subs[code] = set
	}
	id := h.nextSubID
	h.nextSubID++
	set.chans[id] = ch
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		set, ok := h.subs[code]
		if !ok {
			return
		}
		if _, ok := set.chans[id]; ok {
			delete(set.chans, id)
			close(ch)
		}
		if len(set.chans) == 0 {
			delete(h.subs, code)
		}
	}

	return ch, unsubscribe
}

// publishLocked fans the snapshot out to all subscribers of the room,
// in subscription order. Sends never block; a full subscriber just
// misses this snapshot.
func (h *Hub) publishLocked(code string, snap *State) {
	set, ok := h.subs[code]
	if !ok {
		return
	}

	ids := make([]uint64, 0, len(set.chans))
	for id := range set.chans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		select {
		case set.chans[id] <- snap:
		default:
		}
	}
}

// sweepExpiredLocked drops every room whose last activity is older than
// the TTL. Runs at the start of Create and Get; traffic is low enough
// that a full scan beats a background timer.
func (h *Hub) sweepExpiredLocked(now time.Time) {
	cutoff := now.Add(-TTL).UnixMilli()
	for code, st := range h.rooms {
		if st.LastActivity < cutoff {
			delete(h.rooms, code)
		}
	}
}

// SubscriberCount reports how many live subscribers a room has.
func (h *Hub) SubscriberCount(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[normalizeCode(code)]
	if !ok {
		return 0
	}
	return len(set.chans)
}

// Overview is a read-only row for the admin monitor.
type Overview struct {
	Code         string
	CurrentSong  *string
	Subscribers  int
	Controllers  int
	CreatedAt    int64
	LastActivity int64
}

// List returns an overview of every active room, sorted by creation
// time, newest first.
func (h *Hub) List() []Overview {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Overview, 0, len(h.rooms))
	for code, st := range h.rooms {
		n := 0
		if set, ok := h.subs[code]; ok {
			n = len(set.chans)
		}
		out = append(out, Overview{
			Code:         code,
			CurrentSong:  st.CurrentSong,
			Subscribers:  n,
			Controllers:  len(st.Controllers),
			CreatedAt:    st.CreatedAt,
			LastActivity: st.LastActivity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out
}

// Codes are case-insensitive on input and always stored uppercase.
func normalizeCode(code string) string {
	return strings.ToUpper(code)
}
