// Package ikfast drives generated analytic inverse-kinematics solvers. Given a solver
// compiled for one robot's geometry, it sweeps the solver's free parameter, filters raw
// candidates against joint limits, and selects a solution consistent with a seed
// configuration, all under a caller-supplied time budget.
package ikfast

import (
	"context"
	"sort"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/ikfast/spatialmath"
)

const (
	// defaultLimitTolerance pads joint limit checks, in case a solution sits exactly at
	// a limit the seed started on and floating point pushes it just past.
	defaultLimitTolerance = 1e-7

	// defaultSearchDiscretization is the free-parameter step in radians.
	defaultSearchDiscretization = 0.1
)

// SelectionPolicy determines which candidate from a probe's batch is accepted.
type SelectionPolicy int

const (
	// SelectFirst accepts the first candidate, in solver order, that passes the limit
	// filter and the validity check.
	SelectFirst SelectionPolicy = iota

	// SelectClosest ranks each batch by Harmonize distance from the seed before
	// filtering, so the accepted candidate is the valid one nearest the seed. Ranking
	// never spans batches; the search still stops at the first accepting probe.
	SelectClosest
)

// ValidityCheck is consulted with the target pose and an in-limits candidate, e.g. to
// test for collisions. Returning an error rejects the candidate and the search moves on;
// it is never surfaced as an engine error.
type ValidityCheck func(target *spatialmath.Pose, joints []float64) error

// Options configures an Engine. The zero value gives usable defaults.
type Options struct {
	// SearchDiscretization is the free-parameter step in radians. Defaults to 0.1.
	SearchDiscretization float64

	// LimitTolerance pads joint limit checks. Defaults to 1e-7.
	LimitTolerance float64

	// Selection chooses between SelectFirst (default) and SelectClosest.
	Selection SelectionPolicy

	// Clock supplies the time source for search deadlines. Defaults to the wall clock;
	// swapped out by tests.
	Clock clock.Clock
}

// SearchOptions holds the optional arguments to SearchPose.
type SearchOptions struct {
	// ConsistencyLimits restricts the searchable free-parameter range to within the
	// given distance of the seed value. Indexed like the seed; empty means the full
	// limit range is searchable, any other length mismatch is an error.
	ConsistencyLimits []float64

	// ValidityCheck, if non-nil, must approve a candidate before it is accepted.
	ValidityCheck ValidityCheck
}

// Engine turns a Solver into a usable IK service. It is immutable after construction, so
// a single Engine may serve concurrent requests; each request owns its own search state.
type Engine struct {
	chain          *Chain
	solver         Solver
	free           []int
	discretization float64
	tolerance      float64
	policy         SelectionPolicy
	logger         golog.Logger
	clock          clock.Clock
}

// NewEngine builds an engine from a chain and the solver it describes. A joint count
// disagreement between the two, or a solver with more than one free parameter, is a
// fatal configuration error; no engine is returned and the pair must be corrected.
func NewEngine(chain *Chain, solver Solver, logger golog.Logger, opts Options) (*Engine, error) {
	var err error
	if chain.DoF() != solver.NumJoints() {
		err = multierr.Combine(err, NewJointCountMismatchError(chain.DoF(), solver.NumJoints()))
	}
	free := solver.FreeParameters()
	if len(free) > 1 {
		err = multierr.Combine(err, NewTooManyFreeParametersError(len(free)))
	}
	if err != nil {
		return nil, err
	}

	if opts.SearchDiscretization == 0 {
		opts.SearchDiscretization = defaultSearchDiscretization
	}
	if opts.LimitTolerance == 0 {
		opts.LimitTolerance = defaultLimitTolerance
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	for _, joint := range chain.Joints() {
		logger.Debugw("chain joint",
			"name", joint.Name,
			"min", joint.Limit.Min,
			"max", joint.Limit.Max,
			"limited", joint.HasLimits,
		)
	}

	return &Engine{
		chain:          chain,
		solver:         solver,
		free:           free,
		discretization: opts.SearchDiscretization,
		tolerance:      opts.LimitTolerance,
		policy:         opts.Selection,
		logger:         logger,
		clock:          opts.Clock,
	}, nil
}

// NewEngineFromURDF builds the kinematic chain from a robot description and wraps it and
// the solver in an engine.
func NewEngineFromURDF(xmlData []byte, baseLink, tipLink string, solver Solver, logger golog.Logger, opts Options) (*Engine, error) {
	chain, err := NewChainFromURDF(xmlData, baseLink, tipLink, solver.NumJoints())
	if err != nil {
		return nil, err
	}
	return NewEngine(chain, solver, logger, opts)
}

// Chain returns the engine's kinematic chain.
func (e *Engine) Chain() *Chain {
	return e.chain
}

// ComputePose returns a solution for the target pose from a single solver call, holding
// any free joints at their seeded values. Returns ErrNoSolution when no candidate passes
// the limit filter.
func (e *Engine) ComputePose(seed []float64, target *spatialmath.Pose) ([]float64, error) {
	if len(seed) != e.chain.DoF() {
		return nil, NewIncorrectInputLengthError(len(seed), e.chain.DoF())
	}
	free := make([]float64, 0, len(e.free))
	for _, idx := range e.free {
		free = append(free, seed[idx])
	}
	solution, ok := e.selectSolution(target, e.solve(target, free), seed, nil)
	if !ok {
		return nil, ErrNoSolution
	}
	return solution, nil
}

// SearchPose steps the solver's free parameter outward from its seeded value until a
// candidate passes the limit filter, the selection policy, and the optional validity
// check, or until the searchable range or the timeout runs out. With zero free
// parameters there is nothing to sweep and a single probe decides the outcome. Both
// exhaustion and timeout report ErrNoSolution.
func (e *Engine) SearchPose(
	ctx context.Context,
	seed []float64,
	target *spatialmath.Pose,
	timeout time.Duration,
	searchOpts *SearchOptions,
) ([]float64, error) {
	if searchOpts == nil {
		searchOpts = &SearchOptions{}
	}
	if len(seed) != e.chain.DoF() {
		return nil, NewIncorrectInputLengthError(len(seed), e.chain.DoF())
	}
	if len(searchOpts.ConsistencyLimits) != 0 && len(searchOpts.ConsistencyLimits) != e.chain.DoF() {
		return nil, NewIncorrectInputLengthError(len(searchOpts.ConsistencyLimits), e.chain.DoF())
	}

	if len(e.free) == 0 {
		solution, ok := e.selectSolution(target, e.solve(target, nil), seed, searchOpts.ValidityCheck)
		if !ok {
			return nil, ErrNoSolution
		}
		return solution, nil
	}

	freeIdx := e.free[0]
	guess := seed[freeIdx]
	window := 0.
	hasWindow := len(searchOpts.ConsistencyLimits) != 0
	if hasWindow {
		window = searchOpts.ConsistencyLimits[freeIdx]
	}
	state := newSearchState(guess, e.chain.Joints()[freeIdx].Limit, window, hasWindow, e.discretization)
	deadline := e.clock.Now().Add(timeout)

	e.logger.Debugw("searching free parameter",
		"index", freeIdx,
		"guess", guess,
		"positive bound", state.positiveBound,
		"negative bound", state.negativeBound,
	)

	// The first probe holds the free joint at the seed's own value; later probes step
	// outward as +1, -1, +2, -2, ... increments of the discretization.
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.clock.Now().After(deadline) {
			return nil, errors.Wrapf(ErrNoSolution, "search timed out after %s", timeout)
		}
		candidates := e.solve(target, []float64{guess + e.discretization*float64(state.offset)})
		if solution, ok := e.selectSolution(target, candidates, seed, searchOpts.ValidityCheck); ok {
			return solution, nil
		}
		if !state.next() {
			return nil, errors.Wrap(ErrNoSolution, "free parameter range exhausted")
		}
	}
}

// ForwardKinematics computes the pose of the tip link for a full joint vector. Exactly
// one link name must be requested and it must be the chain's tip link; the engine
// supports no other frames. The solver must have been generated with full transform
// output or ErrNoTransformSolver is returned.
func (e *Engine) ForwardKinematics(joints []float64, linkNames ...string) (*spatialmath.Pose, error) {
	if len(linkNames) == 0 {
		return nil, ErrNoLinkNames
	}
	if len(linkNames) > 1 {
		return nil, errors.Errorf("forward kinematics requested for %d links, only the tip link %q is supported", len(linkNames), e.chain.TipLink())
	}
	if linkNames[0] != e.chain.TipLink() {
		return nil, NewUnsupportedLinkError(linkNames[0], e.chain.TipLink())
	}
	if len(joints) != e.chain.DoF() {
		return nil, NewIncorrectInputLengthError(len(joints), e.chain.DoF())
	}
	fkSolver, ok := e.solver.(TransformSolver)
	if !ok {
		return nil, ErrNoTransformSolver
	}
	point, rotation := fkSolver.ComputeFK(joints)
	return spatialmath.NewPose(point, rotation), nil
}

// solve issues one solver call. The solver wants the end effector origin and the
// direction of its local Z axis in the base frame, not a full orientation.
func (e *Engine) solve(target *spatialmath.Pose, free []float64) [][]float64 {
	zDirection := target.Rotation().Mul(r3.Vector{Z: 1})
	candidates := e.solver.ComputeIK(target.Point(), zDirection, free)
	e.logger.Debugf("solver returned %d candidates", len(candidates))
	return candidates
}

// selectSolution applies the limit filter, the selection policy, and the validity check
// to one batch of candidates. Candidates a validity check rejects are simply skipped.
func (e *Engine) selectSolution(
	target *spatialmath.Pose,
	candidates [][]float64,
	seed []float64,
	check ValidityCheck,
) ([]float64, bool) {
	if e.policy == SelectClosest && len(candidates) > 1 {
		ranked := make([][]float64, len(candidates))
		copy(ranked, candidates)
		sort.SliceStable(ranked, func(i, j int) bool {
			return Harmonize(seed, ranked[i]) < Harmonize(seed, ranked[j])
		})
		candidates = ranked
	}
	for _, candidate := range candidates {
		if !e.withinLimits(candidate) {
			continue
		}
		if check != nil {
			if err := check(target, candidate); err != nil {
				e.logger.Debugw("candidate rejected by validity check", "error", err)
				continue
			}
		}
		return candidate, true
	}
	return nil, false
}

// withinLimits rejects candidates with any limited joint outside its padded range.
// Joints without limits never cause rejection. Candidates are never clamped into range.
func (e *Engine) withinLimits(candidate []float64) bool {
	joints := e.chain.Joints()
	if len(candidate) != len(joints) {
		return false
	}
	for i, joint := range joints {
		if !joint.HasLimits {
			continue
		}
		if candidate[i] < joint.Limit.Min-e.tolerance || candidate[i] > joint.Limit.Max+e.tolerance {
			return false
		}
	}
	return true
}
