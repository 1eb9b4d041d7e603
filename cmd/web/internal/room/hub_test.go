package room

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateDefaults(t *testing.T) {
	h := NewHub()
	st := h.Create()

	require.Len(t, st.Code, 4)
	for _, c := range st.Code {
		require.True(t, c >= 'A' && c <= 'Z', "code %q must be uppercase letters", st.Code)
	}
	require.Nil(t, st.CurrentSong)
	require.Equal(t, 0, st.CurrentSection)
	require.Equal(t, 0, st.ScrollPosition)
	require.Equal(t, 0, st.Transpose)
	require.Empty(t, st.Controllers)
	require.NotNil(t, st.Controllers, "controllers must marshal as [], not null")
	require.False(t, st.AutoScroll)
	require.Equal(t, 1, st.AutoScrollSpeed)
	require.Equal(t, st.CreatedAt, st.LastActivity)
}

func TestCreateCodesAreUnique(t *testing.T) {
	h := NewHub()
	seen := make(map[string]struct{})
	for range 200 {
		st := h.Create()
		_, dup := seen[st.Code]
		require.False(t, dup, "duplicate code %s", st.Code)
		seen[st.Code] = struct{}{}
	}
}

func TestGetNormalizesCase(t *testing.T) {
	h := NewHub()
	st := h.Create()

	got, ok := h.Get(st.Code)
	require.True(t, ok)
	require.Equal(t, st.Code, got.Code)

	got, ok = h.Get(strings.ToLower(st.Code))
	require.True(t, ok)
	require.Equal(t, st.Code, got.Code)

	_, ok = h.Get("ZZZZ")
	require.False(t, ok)
}

func TestGetExtendsLease(t *testing.T) {
	h := NewHub()
	st := h.Create()

	// Backdate, then read; the read must refresh the lease.
	h.rooms[st.Code].LastActivity = time.Now().Add(-5 * time.Minute).UnixMilli()
	before := time.Now().UnixMilli()

	got, ok := h.Get(st.Code)
	require.True(t, ok)
	require.GreaterOrEqual(t, got.LastActivity, before)
}

func TestExpiredRoomIsSwept(t *testing.T) {
	h := NewHub()
	st := h.Create()

	h.rooms[st.Code].LastActivity = time.Now().Add(-TTL - time.Second).UnixMilli()

	_, ok := h.Get(st.Code)
	require.False(t, ok)
	require.Empty(t, h.List())
}

func TestRoomJustInsideTTLSurvives(t *testing.T) {
	h := NewHub()
	st := h.Create()

	h.rooms[st.Code].LastActivity = time.Now().Add(-TTL + time.Minute).UnixMilli()

	_, ok := h.Get(st.Code)
	require.True(t, ok)
}

func TestSweepRunsOnCreate(t *testing.T) {
	h := NewHub()
	old := h.Create()
	h.rooms[old.Code].LastActivity = time.Now().Add(-TTL - time.Second).UnixMilli()

	h.Create()

	_, stale := h.rooms[old.Code]
	require.False(t, stale)
}

func TestUpdateMergesOnlyPatchedFields(t *testing.T) {
	h := NewHub()
	st := h.Create()

	song := "bae-bae-lille-lam"
	_, ok := h.Update(st.Code, Patch{CurrentSong: &song})
	require.True(t, ok)

	pos := 42
	got, ok := h.Update(st.Code, Patch{ScrollPosition: &pos})
	require.True(t, ok)

	require.Equal(t, 42, got.ScrollPosition)
	require.NotNil(t, got.CurrentSong)
	require.Equal(t, song, *got.CurrentSong)
	require.Equal(t, 0, got.CurrentSection)
	require.Equal(t, 0, got.Transpose)
	require.False(t, got.AutoScroll)
	require.Equal(t, 1, got.AutoScrollSpeed)
	require.Equal(t, st.CreatedAt, got.CreatedAt)
	require.GreaterOrEqual(t, got.LastActivity, st.LastActivity)
}

func TestUpdateUnknownRoom(t *testing.T) {
	h := NewHub()
	pos := 1
	_, ok := h.Update("NOPE", Patch{ScrollPosition: &pos})
	require.False(t, ok)
}

func TestBroadcastFanOut(t *testing.T) {
	h := NewHub()
	st := h.Create()

	const n = 3
	chans := make([]<-chan *State, n)
	for i := range n {
		ch, unsub := h.Subscribe(st.Code)
		defer unsub()
		chans[i] = ch
	}

	pos := 7
	_, ok := h.Update(st.Code, Patch{ScrollPosition: &pos})
	require.True(t, ok)

	for i, ch := range chans {
		select {
		case snap := <-ch:
			require.Equal(t, 7, snap.ScrollPosition, "subscriber %d", i)
			require.Equal(t, st.Code, snap.Code)
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
		// Exactly one notification per update.
		require.Empty(t, ch)
	}
}

func TestUnsubscribeStopsDeliveryAndFreesSet(t *testing.T) {
	h := NewHub()
	st := h.Create()

	ch, unsub := h.Subscribe(st.Code)
	require.Equal(t, 1, h.SubscriberCount(st.Code))

	unsub()
	_, open := <-ch
	require.False(t, open, "channel must be closed on unsubscribe")
	require.Equal(t, 0, h.SubscriberCount(st.Code))

	h.mu.Lock()
	_, kept := h.subs[st.Code]
	h.mu.Unlock()
	require.False(t, kept, "empty subscriber set must be removed")

	// Idempotent.
	unsub()

	pos := 3
	_, ok := h.Update(st.Code, Patch{ScrollPosition: &pos})
	require.True(t, ok)
}

func TestStaleUnsubscribeLeavesNewSubscribersAlone(t *testing.T) {
	h := NewHub()
	st := h.Create()

	// First subscriber comes and goes; its set is emptied and removed.
	_, unsubA := h.Subscribe(st.Code)
	unsubA()
	require.Equal(t, 0, h.SubscriberCount(st.Code))

	// A fresh subscriber recreates the set for the same code.
	chB, unsubB := h.Subscribe(st.Code)
	defer unsubB()
	require.Equal(t, 1, h.SubscriberCount(st.Code))

	// Calling the stale unsubscribe again must be a no-op: no panic,
	// and the new subscriber's registration stays intact.
	require.NotPanics(t, func() { unsubA() })
	require.Equal(t, 1, h.SubscriberCount(st.Code))

	pos := 7
	_, ok := h.Update(st.Code, Patch{ScrollPosition: &pos})
	require.True(t, ok)

	select {
	case snap := <-chB:
		require.Equal(t, 7, snap.ScrollPosition)
	default:
		t.Fatal("surviving subscriber must still receive updates")
	}
}

func TestSubscriberSnapshotIsIsolated(t *testing.T) {
	h := NewHub()
	st := h.Create()

	ch, unsub := h.Subscribe(st.Code)
	defer unsub()

	_, ok := h.AddController(st.Code, "c-1")
	require.True(t, ok)

	snap := <-ch
	snap.Controllers[0] = "mutated"

	got, ok := h.Get(st.Code)
	require.True(t, ok)
	require.Equal(t, []string{"c-1"}, got.Controllers)
}

func TestDelete(t *testing.T) {
	h := NewHub()
	st := h.Create()

	require.True(t, h.Delete(st.Code))
	require.False(t, h.Delete(st.Code))

	_, ok := h.Get(st.Code)
	require.False(t, ok)
}

func TestListOverview(t *testing.T) {
	h := NewHub()
	a := h.Create()

	_, unsub := h.Subscribe(a.Code)
	defer unsub()

	rooms := h.List()
	require.Len(t, rooms, 1)
	require.Equal(t, a.Code, rooms[0].Code)
	require.Equal(t, 1, rooms[0].Subscribers)
	require.Equal(t, 0, rooms[0].Controllers)
}
