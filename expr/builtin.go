package expr

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"

	"so3kit/linalg"
	"so3kit/so3"
)

// Built-in implementations for the rotation entity kinds. Jacobians of the
// binary operations use the left (global) perturbation convention, the same
// one the exp-map Jacobian is derived in.

func init() {
	RegisterEval(OpExpMap, KindRelativeRotation, evalExpMap)
	RegisterDiff(OpExpMap, KindRelativeRotation, diffExpMap)

	RegisterEval(OpLogMap, KindRotation, evalLogMap)
	RegisterDiff(OpLogMap, KindRotation, diffLogMap)

	RegisterEval(OpInverse, KindRotation, evalInverse)
	RegisterDiff(OpInverse, KindRotation, diffInverse)

	RegisterEval(OpCompose, KindRotation, evalCompose)
	RegisterDiff(OpCompose, KindRotation, diffCompose)
}

func tangentArg(args []Entity, i int) (Tangent, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("expr: missing operand %d", i)
	}
	t, ok := args[i].(Tangent)
	if !ok {
		return nil, fmt.Errorf("expr: operand %d (%s) is not a tangent entity", i, args[i].Kind())
	}
	return t, nil
}

func rotationalArg(args []Entity, i int) (Rotational, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("expr: missing operand %d", i)
	}
	r, ok := args[i].(Rotational)
	if !ok {
		return nil, fmt.Errorf("expr: operand %d (%s) is not a rotational entity", i, args[i].Kind())
	}
	return r, nil
}

func evalExpMap(args []Entity) (Entity, error) {
	rhs, err := tangentArg(args, 0)
	if err != nil {
		return nil, err
	}
	q := so3.Exp(linalg.VecFromMgl(rhs.TangentVector()))
	return RotationFromQuat(linalg.Number(q)), nil
}

func diffExpMap(result Entity, args []Entity, wrt int) (mgl64.Mat3, error) {
	val, ok := result.(Rotational)
	if !ok {
		return mgl64.Mat3{}, fmt.Errorf("expr: expmap result is not rotational")
	}
	rhs, err := tangentArg(args, 0)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	// The Jacobian needs the SO(3) result as a rotation matrix.
	j := so3.ExpJacobian(linalg.MatFromMgl(val.Matrix()), linalg.VecFromMgl(rhs.TangentVector()))
	return linalg.MglMat(j), nil
}

func evalLogMap(args []Entity) (Entity, error) {
	rhs, err := rotationalArg(args, 0)
	if err != nil {
		return nil, err
	}
	v := so3.Log(linalg.QuatFromNumber(rhs.RotationQuat()))
	return RelativeRotationFromVec(linalg.MglVec(v)), nil
}

func diffLogMap(result Entity, args []Entity, wrt int) (mgl64.Mat3, error) {
	val, ok := result.(Tangent)
	if !ok {
		return mgl64.Mat3{}, fmt.Errorf("expr: logmap result is not a tangent entity")
	}
	// Independent of the operand's parametrization; only the resulting
	// rotation vector enters.
	j := so3.LogJacobian(linalg.VecFromMgl(val.TangentVector()))
	return linalg.MglMat(j), nil
}

func evalInverse(args []Entity) (Entity, error) {
	rhs, err := rotationalArg(args, 0)
	if err != nil {
		return nil, err
	}
	return RotationFromQuat(quat.Conj(rhs.RotationQuat())), nil
}

func diffInverse(result Entity, args []Entity, wrt int) (mgl64.Mat3, error) {
	rhs, err := rotationalArg(args, 0)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	return rhs.Matrix().Transpose().Mul(-1), nil
}

func evalCompose(args []Entity) (Entity, error) {
	lhs, err := rotationalArg(args, 0)
	if err != nil {
		return nil, err
	}
	rhs, err := rotationalArg(args, 1)
	if err != nil {
		return nil, err
	}
	return RotationFromQuat(quat.Mul(lhs.RotationQuat(), rhs.RotationQuat())), nil
}

func diffCompose(result Entity, args []Entity, wrt int) (mgl64.Mat3, error) {
	lhs, err := rotationalArg(args, 0)
	if err != nil {
		return mgl64.Mat3{}, err
	}
	if _, err := rotationalArg(args, 1); err != nil {
		return mgl64.Mat3{}, err
	}
	switch wrt {
	case 0:
		return mgl64.Ident3(), nil
	case 1:
		// Adjoint of the left factor.
		return lhs.Matrix(), nil
	}
	return mgl64.Mat3{}, fmt.Errorf("expr: compose has no operand %d", wrt)
}
