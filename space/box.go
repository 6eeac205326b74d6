package space

// Vec is a point in continuous space.
type Vec struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Box is an axis-aligned box. Min is inclusive and Max is exclusive for the
// purpose of intersection tests.
type Box struct {
	Min, Max Vec
}

// BoxAround returns a box of the given half extents centred on c.
func BoxAround(c Vec, halfWidth, height float64) Box {
	return Box{
		Min: Vec{c.X - halfWidth, c.Y, c.Z - halfWidth},
		Max: Vec{c.X + halfWidth, c.Y + height, c.Z + halfWidth},
	}
}

// Offset moves the box by v.
func (b Box) Offset(v Vec) Box {
	return Box{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Intersects reports whether the two boxes share a volume.
func (b Box) Intersects(o Box) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// IntersectsAny reports whether b intersects at least one of the boxes.
func (b Box) IntersectsAny(boxes []Box) bool {
	for _, o := range boxes {
		if b.Intersects(o) {
			return true
		}
	}

	return false
}
