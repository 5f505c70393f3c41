package engine

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"so3kit/expr"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ChainResult is the composed rotation exp(v_1) * ... * exp(v_n) together
// with the Jacobian of its tangent-space representation with respect to each
// input v_i.
type ChainResult struct {
	Rotation  expr.Rotation
	Jacobians []mgl64.Mat3
}

// EvaluateChain evaluates a rotate chain through the operation registry.
// With left perturbations, the derivative with respect to v_i is the adjoint
// of the partial product exp(v_1)...exp(v_i-1) times the exp-map Jacobian at
// v_i.
func EvaluateChain(chain []expr.RelativeRotation) (ChainResult, error) {
	acc := expr.RotationIdentity()
	jacs := make([]mgl64.Mat3, len(chain))

	for i, rv := range chain {
		res, err := expr.Evaluate(expr.OpExpMap, rv)
		if err != nil {
			return ChainResult{}, fmt.Errorf("engine: link %d: %w", i, err)
		}

		jexp, err := expr.Differentiate(expr.OpExpMap, res, []expr.Entity{rv}, 0)
		if err != nil {
			return ChainResult{}, fmt.Errorf("engine: link %d: %w", i, err)
		}
		jacs[i] = acc.Matrix().Mul3(jexp)

		composed, err := expr.Evaluate(expr.OpCompose, acc, res)
		if err != nil {
			return ChainResult{}, fmt.Errorf("engine: link %d: %w", i, err)
		}
		rot, ok := composed.(expr.Rotation)
		if !ok {
			return ChainResult{}, fmt.Errorf("engine: link %d: compose produced %s", i, composed.Kind())
		}
		acc = rot
	}

	return ChainResult{Rotation: acc, Jacobians: jacs}, nil
}
