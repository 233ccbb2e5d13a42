// Package transform maps points, vectors, normals and rays between a
// primitive's local space and world space.
package transform

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-ao-raytracer/pkg/core"
)

// ErrSingularMatrix is returned when a transform matrix has no inverse
var ErrSingularMatrix = errors.New("transform: matrix is not invertible")

// inverseTolerance bounds how far m·m⁻¹ may stray from the identity
const inverseTolerance = 1e-9

// Transform is an affine local-to-world mapping with its inverse.
// The inverse and normal matrices are computed once at construction.
type Transform struct {
	toGlobal mgl64.Mat4
	toLocal  mgl64.Mat4
	normal   mgl64.Mat4 // inverse transpose, maps local normals to world
}

// New builds a transform from a 4x4 affine matrix.
// The bottom row is forced to (0,0,0,1).
func New(m mgl64.Mat4) (Transform, error) {
	m.SetRow(3, mgl64.Vec4{0, 0, 0, 1})

	if m.Det() == 0 {
		return Transform{}, ErrSingularMatrix
	}

	inv := m.Inv()
	if !isFinite(inv) || !m.Mul4(inv).ApproxEqualThreshold(mgl64.Ident4(), inverseTolerance) {
		return Transform{}, ErrSingularMatrix
	}
	return Transform{
		toGlobal: m,
		toLocal:  inv,
		normal:   inv.Transpose(),
	}, nil
}

// MustNew is like New but panics on a singular matrix.
// Only use it with matrices known to be invertible.
func MustNew(m mgl64.Mat4) Transform {
	t, err := New(m)
	if err != nil {
		panic(err)
	}
	return t
}

// Identity returns the transform that leaves everything unchanged
func Identity() Transform {
	return MustNew(mgl64.Ident4())
}

// Viewer builds a camera-style transform placed at lookFrom, whose local -z
// axis points toward lookAt. The up direction is re-derived so the basis is
// orthonormal; up only needs to be non-parallel to the view direction.
func Viewer(lookFrom, lookAt, up core.Vec3) (Transform, error) {
	forward := lookFrom.Subtract(lookAt).Normalize()
	right := up.Cross(forward).Normalize()
	trueUp := forward.Cross(right)

	m := mgl64.Mat4FromCols(
		mgl64.Vec4{right.X, right.Y, right.Z, 0},
		mgl64.Vec4{trueUp.X, trueUp.Y, trueUp.Z, 0},
		mgl64.Vec4{forward.X, forward.Y, forward.Z, 0},
		mgl64.Vec4{lookFrom.X, lookFrom.Y, lookFrom.Z, 1},
	)
	return New(m)
}

// Rotation returns the matrix rotating by degrees about axis
func Rotation(axis core.Vec3, degrees float64) mgl64.Mat4 {
	a := axis.Normalize()
	return mgl64.HomogRotate3D(mgl64.DegToRad(degrees), mgl64.Vec3{a.X, a.Y, a.Z})
}

// Translation returns the matrix translating by offset
func Translation(offset core.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(offset.X, offset.Y, offset.Z)
}

// Scale returns the matrix scaling each axis by the matching component
func Scale(factors core.Vec3) mgl64.Mat4 {
	return mgl64.Scale3D(factors.X, factors.Y, factors.Z)
}

// FromSequence composes steps in order: each step is applied after the ones
// before it, so the first step listed is the first to act on a local point.
func FromSequence(steps ...mgl64.Mat4) (Transform, error) {
	acc := mgl64.Ident4()
	for _, step := range steps {
		acc = step.Mul4(acc)
	}
	return New(acc)
}

// Matrix returns the local-to-world matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.toGlobal
}

// InverseMatrix returns the world-to-local matrix
func (t Transform) InverseMatrix() mgl64.Mat4 {
	return t.toLocal
}

// PointToGlobal maps a local point to world space
func (t Transform) PointToGlobal(p core.Vec3) core.Vec3 {
	return apply(t.toGlobal, p, 1)
}

// PointToLocal maps a world point to local space
func (t Transform) PointToLocal(p core.Vec3) core.Vec3 {
	return apply(t.toLocal, p, 1)
}

// VectorToGlobal maps a local direction to world space, ignoring translation
func (t Transform) VectorToGlobal(v core.Vec3) core.Vec3 {
	return apply(t.toGlobal, v, 0)
}

// VectorToLocal maps a world direction to local space, ignoring translation
func (t Transform) VectorToLocal(v core.Vec3) core.Vec3 {
	return apply(t.toLocal, v, 0)
}

// NormalToGlobal maps a local surface normal to world space using the inverse
// transpose. The result is perpendicular to the transformed surface but is not
// renormalized.
func (t Transform) NormalToGlobal(n core.Vec3) core.Vec3 {
	return apply(t.normal, n, 0)
}

// RayToGlobal maps a local ray to world space. The parametric range is copied
// unchanged, which is valid because affine maps preserve the ray parameter.
func (t Transform) RayToGlobal(r core.Ray) core.Ray {
	r.Origin = t.PointToGlobal(r.Origin)
	r.Direction = t.VectorToGlobal(r.Direction)
	return r
}

// RayToLocal maps a world ray to local space, keeping its parametric range
func (t Transform) RayToLocal(r core.Ray) core.Ray {
	r.Origin = t.PointToLocal(r.Origin)
	r.Direction = t.VectorToLocal(r.Direction)
	return r
}

// BoundsToGlobal returns the world-space box enclosing a transformed local box
func (t Transform) BoundsToGlobal(local core.AABB) core.AABB {
	corners := local.Corners()
	for i, c := range corners {
		corners[i] = t.PointToGlobal(c)
	}
	return core.NewAABBFromPoints(corners[:]...)
}

func apply(m mgl64.Mat4, v core.Vec3, w float64) core.Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, w})
	return core.NewVec3(r[0], r[1], r[2])
}

func isFinite(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
