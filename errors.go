package ikfast

import "github.com/pkg/errors"

var (
	// ErrNoSolution is returned when a search exhausts its range or times out without
	// finding an acceptable candidate. It is an expected outcome, not an engine fault.
	ErrNoSolution = errors.New("no acceptable ik solution found")

	// ErrNoTransformSolver is returned when forward kinematics is requested of a solver
	// that was not generated with full 6-DOF transform output.
	ErrNoTransformSolver = errors.New("solver does not support full transform output, cannot compute forward kinematics")

	// ErrNoLinkNames is returned when a forward kinematics request names no links.
	ErrNoLinkNames = errors.New("forward kinematics requested for an empty set of links")

	// ErrNoModelInformation is returned when a robot description contains no usable data.
	ErrNoModelInformation = errors.New("no model information found in robot description")
)

// NewJointCountMismatchError returns an error indicating that the robot description and the
// generated solver disagree on joint count. This is a configuration mismatch and is never
// auto-corrected; the engine cannot be constructed until the pair agrees.
func NewJointCountMismatchError(chainJoints, solverJoints int) error {
	return errors.Errorf("robot description yielded %d joints but the solver was generated for %d", chainJoints, solverJoints)
}

// NewTooManyFreeParametersError returns an error indicating that the solver leaves more
// joints unconstrained than the search supports.
func NewTooManyFreeParametersError(count int) error {
	return errors.Errorf("solver has %d free parameters, only one is supported", count)
}

// NewIncorrectInputLengthError returns an error indicating that a joint vector has the
// wrong number of elements for the kinematic chain.
func NewIncorrectInputLengthError(actual, expected int) error {
	return errors.Errorf("input slice has %d elements, need exactly %d", actual, expected)
}

// NewUnsupportedLinkError returns an error indicating a forward kinematics request for a
// link other than the single supported tip link.
func NewUnsupportedLinkError(requested, tip string) error {
	return errors.Errorf("cannot compute forward kinematics for link %q, only %q is supported", requested, tip)
}
