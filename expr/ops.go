package expr

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Op identifies a named operation on entities.
type Op uint8

// Operation codes.
const (
	OpNoop Op = iota
	OpExpMap
	OpLogMap
	OpInverse
	OpCompose
)

func (op Op) String() string {
	switch op {
	case OpNoop:
		return "noop"
	case OpExpMap:
		return "expmap"
	case OpLogMap:
		return "logmap"
	case OpInverse:
		return "inverse"
	case OpCompose:
		return "compose"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// EvalFunc computes an operation's result from its operands.
type EvalFunc func(args []Entity) (Entity, error)

// DiffFunc computes the Jacobian of the tangent-space representation of
// result with respect to the tangent-space representation of args[wrt].
// result must be the value previously produced by evaluating the same
// operation on args.
type DiffFunc func(result Entity, args []Entity, wrt int) (mgl64.Mat3, error)

// Implementations are keyed by operation code and the kind of the first
// operand. New entity types or operations extend the tables without touching
// existing entries.
type opKey struct {
	op   Op
	kind Kind
}

var (
	evalRegistry = map[opKey]EvalFunc{}
	diffRegistry = map[opKey]DiffFunc{}
)

// RegisterEval installs the evaluation implementation for op applied to
// operands whose first entity is of the given kind. A later registration for
// the same pair replaces the earlier one.
func RegisterEval(op Op, kind Kind, fn EvalFunc) {
	evalRegistry[opKey{op: op, kind: kind}] = fn
}

// RegisterDiff installs the differentiation implementation for op applied to
// operands whose first entity is of the given kind.
func RegisterDiff(op Op, kind Kind, fn DiffFunc) {
	diffRegistry[opKey{op: op, kind: kind}] = fn
}

// Evaluate produces the result of op applied to args as a newly constructed
// entity.
func Evaluate(op Op, args ...Entity) (Entity, error) {
	if len(args) == 0 {
		return nil, errors.New("expr: evaluate needs at least one operand")
	}
	fn, ok := evalRegistry[opKey{op: op, kind: args[0].Kind()}]
	if !ok {
		return nil, fmt.Errorf("expr: no evaluation of %s for %s", op, args[0].Kind())
	}
	return fn(args)
}

// Differentiate produces the Jacobian of result with respect to args[wrt],
// where result was obtained by evaluating op on args.
func Differentiate(op Op, result Entity, args []Entity, wrt int) (mgl64.Mat3, error) {
	if len(args) == 0 {
		return mgl64.Mat3{}, errors.New("expr: differentiate needs at least one operand")
	}
	if wrt < 0 || wrt >= len(args) {
		return mgl64.Mat3{}, fmt.Errorf("expr: operand index %d out of range", wrt)
	}
	fn, ok := diffRegistry[opKey{op: op, kind: args[0].Kind()}]
	if !ok {
		return mgl64.Mat3{}, fmt.Errorf("expr: no differentiation of %s for %s", op, args[0].Kind())
	}
	return fn(result, args, wrt)
}
