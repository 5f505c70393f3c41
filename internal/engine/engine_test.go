package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"

	"so3kit/expr"
	"so3kit/linalg"
	"so3kit/so3"
)

func quatsClose(t *testing.T, got, want quat.Number, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got.Real, want.Real, tol) ||
		!scalar.EqualWithinAbs(got.Imag, want.Imag, tol) ||
		!scalar.EqualWithinAbs(got.Jmag, want.Jmag, tol) {
		t.Fatalf("quaternion mismatch: %+v vs %+v", got, want)
	}
}

func TestEvaluateChainSingle(t *testing.T) {
	rv := expr.NewRelativeRotation(0.2, -0.3, 0.4)
	result, err := EvaluateChain([]expr.RelativeRotation{rv})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := linalg.Number(so3.Exp(linalg.VecFromMgl(rv.TangentVector())))
	quatsClose(t, result.Rotation.RotationQuat(), want, 1e-14)

	if len(result.Jacobians) != 1 {
		t.Fatalf("expected 1 Jacobian, got %d", len(result.Jacobians))
	}
	// With only one link the accumulated adjoint is the identity, so the
	// chain Jacobian equals the plain exp-map Jacobian.
	wantJ := linalg.MglMat(so3.ExpJacobian(
		linalg.QuatFromNumber(want).Mat(),
		linalg.VecFromMgl(rv.TangentVector()),
	))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !scalar.EqualWithinAbs(result.Jacobians[0].At(i, j), wantJ.At(i, j), 1e-12) {
				t.Fatalf("jacobian mismatch: %v vs %v", result.Jacobians[0], wantJ)
			}
		}
	}
}

func TestEvaluateChainSameAxisAnglesAdd(t *testing.T) {
	quarter := expr.RelativeRotationFromAngleAxis(math.Pi/4, mgl64.Vec3{1, 0, 0})
	result, err := EvaluateChain([]expr.RelativeRotation{quarter, quarter})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := linalg.Number(so3.Exp(linalg.V3(math.Pi/2, 0, 0)))
	quatsClose(t, result.Rotation.RotationQuat(), want, 1e-13)

	if len(result.Jacobians) != 2 {
		t.Fatalf("expected 2 Jacobians, got %d", len(result.Jacobians))
	}
}

func TestEvaluateChainEmpty(t *testing.T) {
	result, err := EvaluateChain(nil)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	quatsClose(t, result.Rotation.RotationQuat(), quat.Number{Real: 1}, 0)
}

func runEngine(t *testing.T, cfg Config) (*Engine, context.Context, context.CancelFunc) {
	t.Helper()
	eng := New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() { _ = eng.Run(ctx) }()
	return eng, ctx, cancel
}

func TestEngineEvaluateChain(t *testing.T) {
	eng, ctx, cancel := runEngine(t, Config{Seed: 1})
	defer cancel()

	rv := expr.NewRelativeRotation(0.1, 0.2, 0.3)
	got, err := eng.EvaluateChain(ctx, []expr.RelativeRotation{rv})
	if err != nil {
		t.Fatalf("engine evaluate: %v", err)
	}
	direct, err := EvaluateChain([]expr.RelativeRotation{rv})
	if err != nil {
		t.Fatalf("direct evaluate: %v", err)
	}
	quatsClose(t, got.Rotation.RotationQuat(), direct.Rotation.RotationQuat(), 0)
}

func TestEngineSeededSampling(t *testing.T) {
	a, ctx, cancel := runEngine(t, Config{Seed: 42})
	defer cancel()
	b, _, cancelB := runEngine(t, Config{Seed: 42})
	defer cancelB()

	qa, err := a.RandomOrientation(ctx)
	if err != nil {
		t.Fatalf("sample a: %v", err)
	}
	qb, err := b.RandomOrientation(ctx)
	if err != nil {
		t.Fatalf("sample b: %v", err)
	}
	if qa != qb {
		t.Fatalf("same seed produced different samples: %+v vs %+v", qa, qb)
	}

	q2, err := a.RandomOrientation(ctx)
	if err != nil {
		t.Fatalf("second sample: %v", err)
	}
	if q2 == qa {
		t.Fatal("generator did not advance")
	}

	n := math.Sqrt(qa.Real*qa.Real + qa.Imag*qa.Imag + qa.Jmag*qa.Jmag + qa.Kmag*qa.Kmag)
	if !scalar.EqualWithinAbs(n, 1, 1e-12) {
		t.Fatalf("sample norm = %v", n)
	}
}

func TestEngineSubscribe(t *testing.T) {
	eng, ctx, cancel := runEngine(t, Config{Seed: 7, TickHz: 100})
	defer cancel()

	ch, unsub := eng.Subscribe(ctx)
	defer unsub()

	select {
	case s := <-ch:
		n := math.Sqrt(s.Quat.Real*s.Quat.Real + s.Quat.Imag*s.Quat.Imag +
			s.Quat.Jmag*s.Quat.Jmag + s.Quat.Kmag*s.Quat.Kmag)
		if !scalar.EqualWithinAbs(n, 1, 1e-12) {
			t.Fatalf("streamed sample norm = %v", n)
		}
	case <-ctx.Done():
		t.Fatal("no sample before timeout")
	}
}
