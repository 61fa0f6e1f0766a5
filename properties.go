package tactile

import "math"

// TouchProperties are aggregate statistics of a surface's active touches,
// recomputed on every dispatch.
type TouchProperties struct {
	Count int
	// COG is the center of gravity: the mean position of all touches.
	COG Vec2
	// Angle and Spread locate the reference touch relative to COG. Both
	// are zero when Count <= 1. The reference touch is the one with the
	// lowest (Screen, ID), so the values do not depend on map order.
	Angle  float64
	Spread float64
}

func keyLess(a, b TouchKey) bool {
	if a.Screen != b.Screen {
		return a.Screen < b.Screen
	}
	return a.ID < b.ID
}

// computeProperties derives TouchProperties from a touch set.
func computeProperties(touches []*Touch) TouchProperties {
	p := TouchProperties{Count: len(touches)}
	if p.Count == 0 {
		return p
	}
	ref := touches[0]
	var sum Vec2
	for _, t := range touches {
		sum = sum.Add(t.Position)
		if keyLess(t.Key(), ref.Key()) {
			ref = t
		}
	}
	p.COG = sum.Scale(1 / float64(p.Count))
	if p.Count <= 1 {
		return p
	}
	d := ref.Position.Sub(p.COG)
	p.Angle = math.Atan2(d.Y, d.X)
	p.Spread = d.Len()
	return p
}
