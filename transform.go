package tactile

// Transform is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// The hit-tester accumulates one per touch to map window-space positions
// into a surface's local space.
type Transform [6]float64

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{1, 0, 0, 1, 0, 0}

// Concat returns the transform that applies m first and then p: p * m.
func (p Transform) Concat(m Transform) Transform {
	return Transform{
		p[0]*m[0] + p[2]*m[1],
		p[1]*m[0] + p[3]*m[1],
		p[0]*m[2] + p[2]*m[3],
		p[1]*m[2] + p[3]*m[3],
		p[0]*m[4] + p[2]*m[5] + p[4],
		p[1]*m[4] + p[3]*m[5] + p[5],
	}
}

// Translated returns t followed by a translation of (dx, dy).
func (t Transform) Translated(dx, dy float64) Transform {
	return Transform{1, 0, 0, 1, dx, dy}.Concat(t)
}

// FlippedY returns t followed by a vertical mirror inside a box of the given
// height: y becomes height - y. Applying it twice is the identity.
func (t Transform) FlippedY(height float64) Transform {
	return Transform{1, 0, 0, -1, 0, height}.Concat(t)
}

// Invert returns the inverse of t. Returns the identity if t is singular.
func (t Transform) Invert() Transform {
	det := t[0]*t[3] - t[2]*t[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := t[3] * invDet
	b := -t[1] * invDet
	c := -t[2] * invDet
	d := t[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*t[4] + c*t[5]),
		-(b*t[4] + d*t[5]),
	}
}

// Apply maps p through t.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{t[0]*p.X + t[2]*p.Y + t[4], t[1]*p.X + t[3]*p.Y + t[5]}
}

// childTransform extends t, which maps into the coordinate space a surface's
// frame is expressed in, so that it maps into that surface's local space.
// parentFlipped is the orientation of the space the frame lives in.
func childTransform(t Transform, frame Rect, parentFlipped, flipped bool) Transform {
	t = t.Translated(-frame.X, -frame.Y)
	if flipped != parentFlipped {
		t = t.FlippedY(frame.Height)
	}
	return t
}
