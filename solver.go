package ikfast

import (
	"github.com/golang/geo/r3"

	"go.viam.com/ikfast/spatialmath"
)

// Solver is the boundary to a generated, geometry-specific analytic solver. An
// implementation typically wraps the output of a code generator compiled for one robot;
// this package never inspects the geometry itself.
type Solver interface {
	// ComputeIK returns zero or more full joint-angle candidates reaching the given end
	// effector origin, with the end effector's local Z axis pointing along zDirection in
	// the base frame. free supplies one value per free parameter; candidates are in
	// solver-defined order and must be treated as arbitrary.
	ComputeIK(target, zDirection r3.Vector, free []float64) [][]float64

	// FreeParameters returns the chain indices of the joints the solver leaves
	// unconstrained and expects the caller to sweep.
	FreeParameters() []int

	// NumJoints returns the joint count the solver was generated for.
	NumJoints() int
}

// TransformSolver is implemented by solvers generated with full 6-DOF transform output.
// Solvers generated for other IK types have no forward kinematics; requesting it from
// them must fail rather than produce a degenerate pose.
type TransformSolver interface {
	Solver

	// ComputeFK returns the end effector origin and rotation for the given full joint
	// vector.
	ComputeFK(joints []float64) (r3.Vector, *spatialmath.RotationMatrix)
}
