// Package spatialmath defines the pose and rotation math used at the analytic solver boundary.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation matrix. Generated analytic solvers exchange
// orientations as row-major 9-element arrays, so that is the wire layout here too.
type RotationMatrix struct {
	mat mgl64.Mat3
}

// NewRotationMatrix creates a rotation matrix from a row-major slice of 9 floats.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	// mgl64 stores matrices column-major
	return &RotationMatrix{mgl64.Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}, nil
}

// NewRotationMatrixFromQuaternion converts a quaternion into a rotation matrix.
func NewRotationMatrixFromQuaternion(q quat.Number) *RotationMatrix {
	mq := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize()
	m4 := mq.Mat4()
	return &RotationMatrix{mgl64.Mat3{
		m4.At(0, 0), m4.At(1, 0), m4.At(2, 0),
		m4.At(0, 1), m4.At(1, 1), m4.At(2, 1),
		m4.At(0, 2), m4.At(1, 2), m4.At(2, 2),
	}}
}

// NewZeroRotation returns a rotation matrix representing no rotation.
func NewZeroRotation() *RotationMatrix {
	return &RotationMatrix{mgl64.Ident3()}
}

// At returns the value at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// Row returns the a vector representing the given row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat.At(row, 0), Y: rm.mat.At(row, 1), Z: rm.mat.At(row, 2)}
}

// Col returns a vector representing the given column.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat.At(0, col), Y: rm.mat.At(1, col), Z: rm.mat.At(2, col)}
}

// Mul returns the rotation of the given vector by this matrix.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	rotated := rm.mat.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return r3.Vector{X: rotated.X(), Y: rotated.Y(), Z: rotated.Z()}
}

// RowMajor returns the matrix as a row-major slice of 9 floats, the inverse of NewRotationMatrix.
func (rm *RotationMatrix) RowMajor() []float64 {
	return []float64{
		rm.mat.At(0, 0), rm.mat.At(0, 1), rm.mat.At(0, 2),
		rm.mat.At(1, 0), rm.mat.At(1, 1), rm.mat.At(1, 2),
		rm.mat.At(2, 0), rm.mat.At(2, 1), rm.mat.At(2, 2),
	}
}

// Quaternion returns the matrix converted to a quaternion.
func (rm *RotationMatrix) Quaternion() quat.Number {
	mq := mgl64.Mat4ToQuat(rm.mat.Mat4())
	return quat.Number{Real: mq.W, Imag: mq.V.X(), Jmag: mq.V.Y(), Kmag: mq.V.Z()}
}

// QuaternionAlmostEqual compares quaternions for approximate equality, treating q and -q
// as the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatDist(a, b) < tol || quatDist(a, quat.Scale(-1, b)) < tol
}

func quatDist(a, b quat.Number) float64 {
	return math.Abs(a.Real-b.Real) + math.Abs(a.Imag-b.Imag) + math.Abs(a.Jmag-b.Jmag) + math.Abs(a.Kmag-b.Kmag)
}
