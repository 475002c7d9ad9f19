package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const barJSON = `{"name":"q","type":"bar","categories":["a","b"],"series":[{"name":"s","values":[1,2]}]}`

const sankeyJSON = `{"type":"sankey","links":[
	{"source":"A","target":"B","value":3},
	{"source":"B","target":"C","value":2}
]}`

func testServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "server:"), nil), cfg, nil)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := testServer(t, Config{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("X-Request-ID = %q, want a uuid", resp.Header.Get(HeaderRequestID))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := testServer(t, Config{})
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got == "not-a-uuid" {
		t.Error("malformed request id should be replaced")
	}
}

func TestRenderSVG(t *testing.T) {
	ts := testServer(t, Config{})

	resp := post(t, ts.URL+"/v1/render", "application/json", barJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %+v", resp.StatusCode, decodeError(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q, want miss", resp.Header.Get("X-Cache"))
	}
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	if !strings.HasPrefix(buf.String(), "<svg ") {
		t.Errorf("body = %.40q", buf.String())
	}

	again := post(t, ts.URL+"/v1/render", "application/json", barJSON)
	if again.Header.Get("X-Cache") != "hit" {
		t.Errorf("second X-Cache = %q, want hit", again.Header.Get("X-Cache"))
	}
}

func TestRenderJSONAndTOML(t *testing.T) {
	ts := testServer(t, Config{})

	resp := post(t, ts.URL+"/v1/render?format=json", "application/json", barJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var geom struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geom); err != nil || geom.Type != "bar" {
		t.Errorf("geometry = %+v, err = %v", geom, err)
	}

	toml := "type = \"pie\"\ncategories = [\"x\", \"y\"]\n\n[[series]]\nname = \"s\"\nvalues = [1, 2]\n"
	resp = post(t, ts.URL+"/v1/render", "application/toml", toml)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("toml status = %d", resp.StatusCode)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		body   string
		status int
		code   string
	}{
		{"bad format", Config{}, "/v1/render?format=gif", barJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad scale", Config{}, "/v1/render?scale=big", barJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed body", Config{}, "/v1/render", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown type", Config{}, "/v1/render", `{"type":"histogram"}`, http.StatusBadRequest, "INVALID_CHART_TYPE"},
		{"missing chart", Config{}, "/v1/render?chart=nope", barJSON, http.StatusNotFound, "NOT_FOUND"},
		{"too large", Config{MaxBodyBytes: 16}, "/v1/render", barJSON, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := testServer(t, tt.cfg)
			resp := post(t, ts.URL+tt.path, "application/json", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body missing request id")
			}
		})
	}
}

func TestScale(t *testing.T) {
	ts := testServer(t, Config{})

	resp := post(t, ts.URL+"/v1/scale", "application/json", `{"min":3,"max":97,"ticks":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got scaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Min != 0 || got.Max != 100 || got.Interval != 20 || len(got.Ticks) != 6 {
		t.Errorf("scale = %+v, want [0, 100] step 20", got)
	}

	resp = post(t, ts.URL+"/v1/scale", "application/json", `{"min":2,"max":800,"log":true}`)
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.Min != 1 || got.Max != 1000 || len(got.Ticks) != 4 {
		t.Errorf("log scale = %+v, want [1, 1000] with 4 decades", got)
	}

	resp = post(t, ts.URL+"/v1/scale", "application/json", `{"min":0,"max":1,"ticks":500}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("ticks=500 status = %d, want 400", resp.StatusCode)
	}
}

func TestSankeyLevels(t *testing.T) {
	ts := testServer(t, Config{})

	resp := post(t, ts.URL+"/v1/sankey/levels?detailed=true", "application/json", sankeyJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %+v", resp.StatusCode, decodeError(t, resp))
	}
	var got pipeline.LevelsResult
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"A": 0, "B": 1, "C": 2}
	for id, lv := range want {
		if got.Layout.Levels[id] != lv {
			t.Errorf("level[%s] = %d, want %d", id, got.Layout.Levels[id], lv)
		}
	}
	if !strings.Contains(got.DOT, "digraph") {
		t.Errorf("DOT = %q", got.DOT)
	}

	resp = post(t, ts.URL+"/v1/sankey/levels", "application/json", barJSON)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("chart without links status = %d, want 400", resp.StatusCode)
	}
}

func TestRouting(t *testing.T) {
	ts := testServer(t, Config{})

	resp, err := http.Get(ts.URL + "/v1/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/render status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(errBodyTooLarge); got != http.StatusRequestEntityTooLarge {
		t.Errorf("statusFor(body too large) = %d", got)
	}
	if got := statusFor(http.ErrHandlerTimeout); got != http.StatusInternalServerError {
		t.Errorf("statusFor(uncoded) = %d", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.Addr != DefaultAddr || c.Timeout != DefaultTimeout || c.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("defaults = %+v", c)
	}
}
