package roomserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cardtable/euchre-rooms/pkg/store"
)

// waitForDetach polls until playerID's seat on actor shows disconnected, or
// fails the test after a short timeout. The websocket close that triggers
// detach is processed asynchronously on the room's actor goroutine.
func waitForDetach(t *testing.T, actor *roomActor, playerID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var detached bool
		actor.call(func(a *roomActor) {
			p := a.room.PlayerByID(playerID)
			detached = p != nil && !p.Connected
		})
		if detached {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s to be detached", playerID)
}

func newTestHTTPServer(t *testing.T) (*httptest.Server, *Registry) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "rooms.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	reg := NewRegistry(st, testLogger())
	t.Cleanup(reg.Shutdown)

	srv := NewServer(reg, testLogger())
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, reg
}

func dialRoom(t *testing.T, ts *httptest.Server, query string) (*websocket.Conn, *http.Response) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/websocket?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	return conn, resp
}

func TestWebsocketCreateThenListThenDelete(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	conn, _ := dialRoom(t, ts, "room=r1&name=P0&create=1")
	defer conn.Close()

	var first ServerMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if first.Type != msgTypeState || first.State == nil {
		t.Fatalf("expected an initial state frame, got %+v", first)
	}
	if first.State.CreatorToken == "" {
		t.Fatalf("expected the creator to receive a creatorToken on first state")
	}
	token := first.State.CreatorToken

	listResp, err := http.Get(ts.URL + "/rooms")
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	defer listResp.Body.Close()
	var listed struct {
		Rooms []RoomSummary `json:"rooms"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode room list: %v", err)
	}
	if len(listed.Rooms) != 1 || listed.Rooms[0].Name != "r1" {
		t.Fatalf("expected r1 listed, got %+v", listed.Rooms)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/rooms/r1?creatorToken=wrong", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete with wrong token: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 deleting with the wrong token, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/rooms/r1?creatorToken="+token, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete with correct token: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 deleting with the correct token, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	listResp2, err := http.Get(ts.URL + "/rooms")
	if err != nil {
		t.Fatalf("list rooms after delete: %v", err)
	}
	defer listResp2.Body.Close()
	listed.Rooms = nil
	if err := json.NewDecoder(listResp2.Body).Decode(&listed); err != nil {
		t.Fatalf("decode room list: %v", err)
	}
	if len(listed.Rooms) != 0 {
		t.Fatalf("expected no rooms listed after deletion, got %+v", listed.Rooms)
	}
}

func TestWebsocketJoinExistingRoomFailsWithWrongPassword(t *testing.T) {
	ts, _ := newTestHTTPServer(t)

	creator, _ := dialRoom(t, ts, "room=r1&name=P0&create=1&password=secret")
	defer creator.Close()
	var first ServerMessage
	creator.ReadJSON(&first)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/websocket?room=r1&name=P1&password=wrong"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatalf("expected the dial to fail on a wrong password")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("expected 403 for a wrong password, got %d", status)
	}
}

func TestWebsocketReconnectBySameNameRebindsSeat(t *testing.T) {
	ts, reg := newTestHTTPServer(t)

	conn, _ := dialRoom(t, ts, "room=r1&name=P0&create=1")
	var first ServerMessage
	conn.ReadJSON(&first)
	playerID := first.State.You.ID
	conn.Close()

	// give the actor a moment to process the close and detach.
	actor := reg.Get("r1")
	waitForDetach(t, actor, playerID)

	conn2, _ := dialRoom(t, ts, "room=r1&name=p0")
	defer conn2.Close()
	var second ServerMessage
	if err := conn2.ReadJSON(&second); err != nil {
		t.Fatalf("read state after reconnect: %v", err)
	}
	if second.State.You == nil || second.State.You.ID != playerID {
		t.Fatalf("expected reconnection by name to rebind the same player id")
	}
}
