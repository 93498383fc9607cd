package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Pose represents a position and orientation in 3D space.
type Pose struct {
	point    r3.Vector
	rotation *RotationMatrix
}

// NewPose creates a pose from a point and a rotation. A nil rotation means no rotation.
func NewPose(point r3.Vector, rotation *RotationMatrix) *Pose {
	if rotation == nil {
		rotation = NewZeroRotation()
	}
	return &Pose{point: point, rotation: rotation}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() *Pose {
	return NewPose(r3.Vector{}, nil)
}

// NewPoseFromPoint creates a pose at the given point with no rotation.
func NewPoseFromPoint(point r3.Vector) *Pose {
	return NewPose(point, nil)
}

// Point returns the pose's position.
func (p *Pose) Point() r3.Vector {
	return p.point
}

// Rotation returns the pose's orientation.
func (p *Pose) Rotation() *RotationMatrix {
	return p.rotation
}

// PoseAlmostEqual compares poses for approximate equality.
func PoseAlmostEqual(a, b *Pose, tol float64) bool {
	return a.point.Sub(b.point).Norm() < tol &&
		QuaternionAlmostEqual(a.rotation.Quaternion(), b.rotation.Quaternion(), tol)
}
