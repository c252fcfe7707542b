package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(nil, nil, logger), store.NewMemoryStore(), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("Status = %q", body.Status)
	}
}

func TestRenderJSON(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?count=10&seed=7&strategy=grid")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Strategy != "grid" {
		t.Errorf("Strategy = %q", body.Strategy)
	}
	if len(body.Data) == 0 || len(body.Layout.Nodes) == 0 {
		t.Errorf("empty render: %d values, %d nodes", len(body.Data), len(body.Layout.Nodes))
	}
	// Duplicate sample values collapse into one node each.
	if len(body.Layout.Nodes) > body.Count {
		t.Errorf("node count %d exceeds sample count %d", len(body.Layout.Nodes), body.Count)
	}
}

func TestRenderEchoesDefaultedParams(t *testing.T) {
	_, ts := newTestServer(t)

	// Omitting seed and strategy must report the values the run used,
	// not the zero values from the request.
	resp, err := http.Get(ts.URL + "/api/render?count=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Seed != pipeline.DefaultSeed {
		t.Errorf("Seed = %d, want %d", body.Seed, pipeline.DefaultSeed)
	}
	if body.Strategy != pipeline.DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", body.Strategy, pipeline.DefaultStrategy)
	}
}

func TestRenderSVG(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?count=5&format=svg&strategy=radial")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "<svg") {
		t.Error("response is not SVG")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{
		"/api/render?format=bmp",
		"/api/render?strategy=spiral",
		"/api/render?seed=notanumber",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestRenderClampsCount(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?count=500&seed=1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body renderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count > 40 {
		t.Errorf("Count = %d, expected clamp to 40", body.Count)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	_, ts := newTestServer(t)

	payload, _ := json.Marshal(createSnapshotRequest{
		Data:     []int{50, 25, 75, 40, 60},
		Strategy: "grid",
	})
	resp, err := http.Post(ts.URL+"/api/snapshots", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var created createSnapshotResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("empty snapshot ID")
	}

	// Fetch it back as JSON.
	getResp, err := http.Get(ts.URL + created.URL)
	if err != nil {
		t.Fatalf("GET %s: %v", created.URL, err)
	}
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", getResp.StatusCode)
	}
	var snap store.Snapshot
	if err := json.NewDecoder(getResp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.ID != created.ID {
		t.Errorf("ID = %q, want %q", snap.ID, created.ID)
	}
	if len(snap.Data) != 5 || len(snap.Layout.Conflicts) != 1 {
		t.Errorf("snapshot data %v, conflicts %v", snap.Data, snap.Layout.Conflicts)
	}

	// And as SVG.
	svgResp, err := http.Get(ts.URL + created.URL + ".svg")
	if err != nil {
		t.Fatalf("GET svg: %v", err)
	}
	defer svgResp.Body.Close()
	if svgResp.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d", svgResp.StatusCode)
	}
	body, _ := io.ReadAll(svgResp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("snapshot svg endpoint did not return SVG")
	}
}

func TestSnapshotNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/snapshots/no-such-id")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "SNAPSHOT_NOT_FOUND" {
		t.Errorf("Code = %q", body.Code)
	}
}

func TestSnapshotRejectsInvalidBody(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/snapshots", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
