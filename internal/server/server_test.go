package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/joymap/internal/engine"
	"github.com/soar/joymap/internal/hub"
	"github.com/soar/joymap/internal/server"
	"github.com/soar/joymap/internal/test"
)

// fakeInput executes commands immediately.
type fakeInput struct {
	state engine.State
	got   chan engine.Command
}

func (f *fakeInput) CurrentState() engine.State {
	return f.state
}

func (f *fakeInput) Submit(cmd engine.Command) bool {
	var err error
	if cmd.Kind == engine.ConfigureApply {
		err = engine.ErrNoSession
	}
	f.got <- cmd
	cmd.Reply <- err
	return true
}

const page = `<!DOCTYPE html>
<html>
  <head>
    <title>joymap</title>
  </head>
  <body>
    <p>   controls   </p>
  </body>
</html>
`

func newServer(t *testing.T) (*httptest.Server, *fakeInput) {
	t.Helper()
	input := &fakeInput{
		state: engine.State{Connected: true, Name: "pad", GUID: "guid"},
		got:   make(chan engine.Command, 4),
	}

	h := hub.NewHub()
	go h.Run()
	b := hub.NewBroadcaster(h, input, make(chan engine.State))
	go b.Run()

	fsys := fstest.MapFS{
		"index.html": {Data: []byte(page)},
		"app.js":     {Data: []byte("function  add ( a , b ) {\n  return a + b ;\n}\n")},
	}
	handler, err := server.New(h, b, input, fsys, ":0").Handler()
	if err != nil {
		t.Fatalf("building handler: %v", err)
	}

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, input
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	test.ExpectSuccess(t, err)
	return resp, string(body)
}

func TestStaticAssetsAreMinified(t *testing.T) {
	ts, _ := newServer(t)

	resp, body := get(t, ts.URL+"/")
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)
	test.ExpectSuccess(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	test.ExpectSuccess(t, strings.Contains(body, "controls"))
	test.ExpectSuccess(t, len(body) < len(page))
	test.ExpectFailure(t, strings.Contains(body, "   "))

	resp, body = get(t, ts.URL+"/app.js")
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)
	test.ExpectFailure(t, strings.Contains(body, "  "))

	resp, _ = get(t, ts.URL+"/missing.css")
	test.ExpectEquality(t, resp.StatusCode, http.StatusNotFound)
}

func TestStateAPI(t *testing.T) {
	ts, _ := newServer(t)

	resp, body := get(t, ts.URL+"/api/state")
	test.ExpectEquality(t, resp.StatusCode, http.StatusOK)

	var s engine.State
	test.ExpectSuccess(t, json.Unmarshal([]byte(body), &s))
	test.ExpectEquality(t, s.Name, "pad")
	test.ExpectSuccess(t, s.Connected)
}

func TestCommandAPI(t *testing.T) {
	ts, input := newServer(t)

	post := func(body string) (int, hub.WSMessage) {
		resp, err := http.Post(ts.URL+"/api/command", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		defer resp.Body.Close()
		var ack hub.WSMessage
		if resp.StatusCode != http.StatusBadRequest {
			test.ExpectSuccess(t, json.NewDecoder(resp.Body).Decode(&ack))
		}
		return resp.StatusCode, ack
	}

	status, ack := post(`{"type":"select_device","position":1}`)
	test.ExpectEquality(t, status, http.StatusOK)
	test.ExpectSuccess(t, ack.OK)
	cmd := <-input.got
	test.ExpectEquality(t, cmd.Kind, engine.SelectDevice)
	test.ExpectEquality(t, cmd.Position, 1)

	status, ack = post(`{"type":"configure_apply"}`)
	test.ExpectEquality(t, status, http.StatusConflict)
	test.ExpectFailure(t, ack.OK)
	test.ExpectEquality(t, ack.Error, engine.ErrNoSession.Error())
	<-input.got

	status, _ = post(`{not json`)
	test.ExpectEquality(t, status, http.StatusBadRequest)
}

func TestWebSocket(t *testing.T) {
	ts, input := newServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	test.ExpectSuccess(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg hub.WSMessage
	test.ExpectSuccess(t, conn.ReadJSON(&msg))
	test.ExpectEquality(t, msg.Type, "full")
	if msg.Data == nil {
		t.Fatalf("initial message has no state")
	}
	test.ExpectEquality(t, msg.Data.GUID, "guid")

	test.ExpectSuccess(t, conn.WriteJSON(hub.ClientMessage{Type: "silent", On: true}))
	test.ExpectSuccess(t, conn.ReadJSON(&msg))
	test.ExpectEquality(t, msg.Type, "ack")
	test.ExpectEquality(t, msg.Command, "silent")
	test.ExpectSuccess(t, msg.OK)

	cmd := <-input.got
	test.ExpectEquality(t, cmd.Kind, engine.SetSilent)
	test.ExpectSuccess(t, cmd.On)
}
