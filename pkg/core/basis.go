package core

import "math"

// OrthonormalBasis is a right-handed frame of three perpendicular unit vectors
type OrthonormalBasis struct {
	U, V, W Vec3
}

// NewBasisFromW builds a frame whose W axis points along w.
// w need not be unit length; it is normalized here.
func NewBasisFromW(w Vec3) OrthonormalBasis {
	w = w.Normalize()

	// Pick a helper axis that is not nearly parallel to w
	a := NewVec3(1, 0, 0)
	if math.Abs(w.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}

	v := w.Cross(a).Normalize()
	u := v.Cross(w)
	return OrthonormalBasis{U: u, V: v, W: w}
}

// ToWorld maps a vector expressed in the frame's local coordinates to world space
func (b OrthonormalBasis) ToWorld(local Vec3) Vec3 {
	return b.U.Multiply(local.X).Add(b.V.Multiply(local.Y)).Add(b.W.Multiply(local.Z))
}
