package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"so3kit/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng := engine.New(engine.Config{Seed: 99, TickHz: 100})
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = eng.Run(ctx) }()

	srv := httptest.NewServer(NewServer(eng).Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

type evalResponse struct {
	Quat struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
		W float64 `json:"w"`
	} `json:"quat"`
	Jacobians [][3][3]float64 `json:"jacobians"`
}

func TestEvalQuarterTurn(t *testing.T) {
	srv := newTestServer(t)

	body := `{"rotations":[{"x":1.5707963267948966,"y":0,"z":0}]}`
	resp, err := http.Post(srv.URL+"/eval", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out evalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	const s = 0.7071067811865476
	if !scalar.EqualWithinAbs(out.Quat.X, s, 1e-9) || !scalar.EqualWithinAbs(out.Quat.W, s, 1e-9) {
		t.Fatalf("quat = %+v", out.Quat)
	}
	if len(out.Jacobians) != 1 {
		t.Fatalf("jacobians = %d", len(out.Jacobians))
	}
}

func TestEvalAngleAxis(t *testing.T) {
	srv := newTestServer(t)

	// Non-normalized axis; the server normalizes it.
	body := `{"rotations":[{"angle":1.5707963267948966,"axis":[0,0,5]}]}`
	resp, err := http.Post(srv.URL+"/eval", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out evalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	const s = 0.7071067811865476
	if !scalar.EqualWithinAbs(out.Quat.Z, s, 1e-9) || !scalar.EqualWithinAbs(out.Quat.W, s, 1e-9) {
		t.Fatalf("quat = %+v", out.Quat)
	}
}

func TestEvalRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"empty chain", `{"rotations":[]}`},
		{"invalid json", `{"rotations":`},
		{"short axis", `{"rotations":[{"angle":1,"axis":[1,2]}]}`},
		{"zero axis", `{"rotations":[{"angle":1,"axis":[0,0,0]}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/eval", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}

	resp, err := http.Get(srv.URL + "/eval")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /eval status = %d", resp.StatusCode)
	}
}

func TestSample(t *testing.T) {
	srv := newTestServer(t)

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(srv.URL + "/sample")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Quat struct {
			X, Y, Z, W float64
		} `json:"quat"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	n := math.Sqrt(out.Quat.X*out.Quat.X + out.Quat.Y*out.Quat.Y +
		out.Quat.Z*out.Quat.Z + out.Quat.W*out.Quat.W)
	if !scalar.EqualWithinAbs(n, 1, 1e-9) {
		t.Fatalf("sample norm = %v", n)
	}
}
