// Package api exposes the evaluation engine over HTTP: chain evaluation,
// orientation sampling and a server-sent sample stream.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"so3kit/expr"
	"so3kit/internal/engine"
)

type Server struct {
	eng *engine.Engine
	mux *http.ServeMux
}

func NewServer(eng *engine.Engine) *Server {
	s := &Server{eng: eng, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/eval", s.eval)
	s.mux.HandleFunc("/sample", s.sample)
	s.mux.HandleFunc("/stream", s.streamSSE)
}

// wireQuat is the x, y, z, w wire form of a quaternion.
type wireQuat struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

func toWire(q quat.Number) wireQuat {
	return wireQuat{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real}
}

// rotationSpec is one chain link: either a rotation vector (x, y, z) or an
// angle-axis pair. Axis wins when both are present.
type rotationSpec struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Z     float64    `json:"z"`
	Angle float64    `json:"angle,omitempty"`
	Axis  *[]float64 `json:"axis,omitempty"`
}

func (r rotationSpec) toEntity() (expr.RelativeRotation, error) {
	if r.Axis != nil {
		a := *r.Axis
		if len(a) != 3 {
			return expr.RelativeRotation{}, fmt.Errorf("axis needs 3 components, got %d", len(a))
		}
		axis := mgl64.Vec3{a[0], a[1], a[2]}
		if axis.Len() == 0 {
			return expr.RelativeRotation{}, fmt.Errorf("axis must not be zero")
		}
		return expr.RelativeRotationFromAngleAxis(r.Angle, axis), nil
	}
	return expr.NewRelativeRotation(r.X, r.Y, r.Z), nil
}

func jacobianRows(m mgl64.Mat3) [3][3]float64 {
	var r [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m.At(i, j)
		}
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) eval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Rotations []rotationSpec `json:"rotations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(body.Rotations) == 0 {
		http.Error(w, "rotations required", http.StatusBadRequest)
		return
	}

	chain := make([]expr.RelativeRotation, 0, len(body.Rotations))
	for i, spec := range body.Rotations {
		rv, err := spec.toEntity()
		if err != nil {
			http.Error(w, fmt.Sprintf("rotation %d: %v", i, err), http.StatusBadRequest)
			return
		}
		chain = append(chain, rv)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	result, err := s.eng.EvaluateChain(ctx, chain)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jacs := make([][3][3]float64, len(result.Jacobians))
	for i, j := range result.Jacobians {
		jacs[i] = jacobianRows(j)
	}

	writeJSON(w, map[string]any{
		"quat":      toWire(result.Rotation.RotationQuat()),
		"jacobians": jacs,
	})
}

func (s *Server) sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	q, err := s.eng.RandomOrientation(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, map[string]any{"quat": toWire(q)})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case smp, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(map[string]any{"quat": toWire(smp.Quat), "ts": smp.TS})
			fmt.Fprintf(w, "event: sample\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
