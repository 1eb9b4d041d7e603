package rooms

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"syng.no/allsang/cmd/web/internal/room"
)

type sseEvent struct {
	name string
	data string
}

// readEvents consumes n named events from an SSE body, skipping
// comment frames.
func readEvents(t *testing.T, scanner *bufio.Scanner, n int) []sseEvent {
	t.Helper()
	var events []sseEvent
	var cur sseEvent
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			cur.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.data = strings.TrimPrefix(line, "data: ")
		case line == "" && cur.name != "":
			events = append(events, cur)
			if len(events) == n {
				return events
			}
			cur = sseEvent{}
		}
	}
	t.Fatalf("stream ended after %d of %d events: %v", len(events), n, scanner.Err())
	return nil
}

func TestStreamInitialStateThenUpdate(t *testing.T) {
	hub := room.NewHub()
	srv := httptest.NewServer(newTestRouter(hub))
	defer srv.Close()

	st := hub.Create()

	resp, err := http.Get(srv.URL + "/room/" + st.Code + "/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	scanner := bufio.NewScanner(resp.Body)

	// The connection's first event is always the full state.
	events := readEvents(t, scanner, 1)
	require.Equal(t, "state", events[0].name)
	require.Contains(t, events[0].data, `"code":"`+st.Code+`"`)

	// Wait for the subscription to land, then mutate.
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(st.Code) == 1
	}, 2*time.Second, 10*time.Millisecond)

	pos := 42
	_, ok := hub.Update(st.Code, room.Patch{ScrollPosition: &pos})
	require.True(t, ok)

	events = readEvents(t, scanner, 1)
	require.Equal(t, "update", events[0].name)
	require.Contains(t, events[0].data, `"scrollPosition":42`)
}

func TestStreamRoomNotFound(t *testing.T) {
	hub := room.NewHub()
	srv := httptest.NewServer(newTestRouter(hub))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/room/ZZZZ/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestStreamDisconnectUnsubscribes(t *testing.T) {
	hub := room.NewHub()
	srv := httptest.NewServer(newTestRouter(hub))
	defer srv.Close()

	st := hub.Create()

	resp, err := http.Get(srv.URL + "/room/" + st.Code + "/stream")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(st.Code) == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp.Body.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(st.Code) == 0
	}, 2*time.Second, 10*time.Millisecond, "server must unsubscribe on client disconnect")
}

func TestStreamMultipleSubscribers(t *testing.T) {
	hub := room.NewHub()
	srv := httptest.NewServer(newTestRouter(hub))
	defer srv.Close()

	st := hub.Create()

	var scanners []*bufio.Scanner
	for range 2 {
		resp, err := http.Get(srv.URL + "/room/" + st.Code + "/stream")
		require.NoError(t, err)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		readEvents(t, scanner, 1) // initial state
		scanners = append(scanners, scanner)
	}

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(st.Code) == 2
	}, 2*time.Second, 10*time.Millisecond)

	song := "fader-jakob"
	_, ok := hub.Update(st.Code, room.Patch{CurrentSong: &song})
	require.True(t, ok)

	for i, scanner := range scanners {
		events := readEvents(t, scanner, 1)
		require.Equal(t, "update", events[0].name, "subscriber %d", i)
		require.Contains(t, events[0].data, `"currentSong":"fader-jakob"`)
	}
}
