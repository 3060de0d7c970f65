package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratchet-dev/ratchet"
	adapter "github.com/ratchet-dev/ratchet/pkg/adapters/http"
	"github.com/ratchet-dev/ratchet/pkg/domain"
)

const (
	stateIdle domain.StateID = iota
	stateBusy
)

const (
	msgStart domain.MsgType = iota
	msgStop
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	started := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		return domain.Advance, nil
	}
	stopped := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		return domain.Complete, nil
	}

	m, err := ratchet.New([]domain.Rule{
		{CurrentState: stateIdle, Msg: msgStart, Handler: started, NextState: stateBusy},
		{CurrentState: stateBusy, Msg: msgStop, Handler: stopped, NextState: domain.Terminal},
		domain.End(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	srv := adapter.NewServer(m, adapter.WithNames(
		[]string{"IDLE", "BUSY"},
		[]string{"START", "STOP"},
	))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_RoundTrip(t *testing.T) {
	ts := newTestServer(t)

	// Spawn
	resp := postJSON(t, ts.URL+"/automatons", `{"state": 0}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	spawned := decode[map[string]any](t, resp)
	id := int64(spawned["id"].(float64))
	assert.Equal(t, "new", spawned["status"])

	// Send
	resp = postJSON(t, fmt.Sprintf("%s/automatons/%d/messages", ts.URL, id), `{"msg": 0}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	sent := decode[map[string]int](t, resp)
	assert.Equal(t, 1, sent["pending"])

	// Run one pass
	resp = postJSON(t, ts.URL+"/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ran := decode[map[string]any](t, resp)
	assert.Equal(t, true, ran["more"], "the drained automaton requeues as New")

	// Inspect
	resp, err := http.Get(fmt.Sprintf("%s/automatons/%d", ts.URL, id))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, float64(stateBusy), got["state"])
	assert.Equal(t, float64(0), got["pending"])

	// Stats
	resp, err = http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	stats := decode[domain.Stats](t, resp)
	assert.Equal(t, 1, stats.Total())

	// Graph
	resp, err = http.Get(ts.URL + "/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	dot, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(dot), `IDLE -> BUSY [label="START"];`)
	assert.Contains(t, string(dot), `BUSY -> _ [label="STOP"];`)
}

func TestServer_CompletionRemovesHandle(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/automatons", `{"state": 0}`)
	spawned := decode[map[string]any](t, resp)
	id := int64(spawned["id"].(float64))

	postJSON(t, fmt.Sprintf("%s/automatons/%d/messages", ts.URL, id), `{"msg": 0}`).Body.Close()
	postJSON(t, fmt.Sprintf("%s/automatons/%d/messages", ts.URL, id), `{"msg": 1}`).Body.Close()

	// Both messages drain in one pass; the second completes the automaton.
	resp = postJSON(t, ts.URL+"/run", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(fmt.Sprintf("%s/automatons/%d", ts.URL, id))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "a completed automaton's handle is gone")
}

func TestServer_RunToIdle(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/automatons", `{"state": 0}`)
	spawned := decode[map[string]any](t, resp)
	id := int64(spawned["id"].(float64))
	postJSON(t, fmt.Sprintf("%s/automatons/%d/messages", ts.URL, id), `{"msg": 0}`).Body.Close()

	resp = postJSON(t, ts.URL+"/run", `{"max_passes": 5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ran := decode[map[string]any](t, resp)
	assert.Equal(t, false, ran["more"])
	assert.Equal(t, float64(2), ran["passes"], "one dispatching pass plus the settling pass")
}

func TestServer_Errors(t *testing.T) {
	ts := newTestServer(t)

	t.Run("spawn unknown state", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/automatons", `{"state": 42}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("spawn bad body", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/automatons", `{`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown automaton", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/automatons/99")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/automatons/not-a-number")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete then send", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/automatons", `{"state": 0}`)
		spawned := decode[map[string]any](t, resp)
		id := int64(spawned["id"].(float64))

		req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/automatons/%d", ts.URL, id), nil)
		require.NoError(t, err)
		del, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		del.Body.Close()
		assert.Equal(t, http.StatusNoContent, del.StatusCode)

		resp = postJSON(t, fmt.Sprintf("%s/automatons/%d/messages", ts.URL, id), `{"msg": 0}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
