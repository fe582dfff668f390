package main

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/njchilds90/gomathgen"
	"github.com/njchilds90/gomathgen/internal/config"
)

func newTestServer(t *testing.T, capacity int) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Capacity = capacity
	gen := mathgen.NewGenerator(rand.New(rand.NewSource(7)), cfg.Generator.Limits())
	ts := httptest.NewServer(newServer(cfg, gen).routes())
	t.Cleanup(ts.Close)
	return ts
}

type problemBody struct {
	ID      string `json:"id"`
	Level   int    `json:"level"`
	Answer  int    `json:"answer"`
	Choices []struct {
		Option string `json:"option"`
		String string `json:"string"`
	} `json:"choices"`
	Prompt struct {
		String string `json:"string"`
		LaTeX  string `json:"latex"`
	} `json:"prompt"`
}

func getProblem(t *testing.T, url string) (int, problemBody) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body problemBody
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 4)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("want status ok, got %v", body["status"])
	}
}

func TestSchema(t *testing.T) {
	ts := newTestServer(t, 4)
	resp, err := http.Get(ts.URL + "/schema")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tools) == 0 {
		t.Fatal("expected tools in schema")
	}
}

func TestTool_Simplify(t *testing.T) {
	ts := newTestServer(t, 4)
	x := mathgen.ExprJSON(mathgen.Sum(mathgen.Var("x"), mathgen.Int(0)))
	payload, _ := json.Marshal(mathgen.ToolRequest{Tool: "simplify", Params: map[string]interface{}{"expr": x}})
	resp, err := http.Post(ts.URL+"/tool", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out mathgen.ToolResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Error != "" || out.String != "x" {
		t.Errorf("want x, got %q (error %q)", out.String, out.Error)
	}
}

func TestTool_RejectsGet(t *testing.T) {
	ts := newTestServer(t, 4)
	resp, err := http.Get(ts.URL + "/tool")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("want 405, got %d", resp.StatusCode)
	}
}

func TestTool_TrailingData(t *testing.T) {
	ts := newTestServer(t, 4)
	resp, err := http.Post(ts.URL+"/tool", "application/json", strings.NewReader(`{"tool":"tool_spec"} {}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("want 400, got %d", resp.StatusCode)
	}
}

func TestRandProblem_StoredAndFetched(t *testing.T) {
	ts := newTestServer(t, 4)
	for _, level := range mathgen.Levels() {
		status, p := getProblem(t, ts.URL+"/rand-problem?level="+string(rune('0'+level)))
		if status != http.StatusOK {
			t.Fatalf("level %d: want 200, got %d", level, status)
		}
		if p.Level != level {
			t.Errorf("want level %d, got %d", level, p.Level)
		}
		if len(p.Choices) != 4 {
			t.Errorf("want 4 choices, got %d", len(p.Choices))
		}
		if p.Answer < 0 || p.Answer >= len(p.Choices) {
			t.Errorf("answer index %d out of range", p.Answer)
		}

		status, again := getProblem(t, ts.URL+"/problem/"+p.ID)
		if status != http.StatusOK {
			t.Fatalf("want 200 fetching %s, got %d", p.ID, status)
		}
		if again.Prompt.String != p.Prompt.String {
			t.Errorf("want prompt %q, got %q", p.Prompt.String, again.Prompt.String)
		}
	}
}

func TestRandProblem_InvalidLevel(t *testing.T) {
	ts := newTestServer(t, 4)
	for _, q := range []string{"9", "abc"} {
		status, _ := getProblem(t, ts.URL+"/rand-problem?level="+q)
		if status != http.StatusBadRequest {
			t.Errorf("level %s: want 400, got %d", q, status)
		}
	}
}

func TestProblem_NotFound(t *testing.T) {
	ts := newTestServer(t, 4)
	status, _ := getProblem(t, ts.URL+"/problem/"+uuid.New().String())
	if status != http.StatusNotFound {
		t.Errorf("want 404, got %d", status)
	}
	status, _ = getProblem(t, ts.URL+"/problem/not-a-uuid")
	if status != http.StatusBadRequest {
		t.Errorf("want 400, got %d", status)
	}
}

func TestProblemStore_EvictsOldest(t *testing.T) {
	s := newProblemStore(2)
	a := &mathgen.Problem{ID: uuid.New()}
	b := &mathgen.Problem{ID: uuid.New()}
	c := &mathgen.Problem{ID: uuid.New()}
	s.Put(a)
	s.Put(b)
	s.Put(c)
	if _, ok := s.Get(a.ID); ok {
		t.Error("expected oldest problem to be evicted")
	}
	if _, ok := s.Get(c.ID); !ok {
		t.Error("expected newest problem to be stored")
	}
	if s.Len() != 2 {
		t.Errorf("want 2, got %d", s.Len())
	}
}
