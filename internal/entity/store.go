package entity

// Store owns the simulation state of all moving bodies and ambient points.
// It is mutated only by the frame scheduler's call chain.
type Store struct {
	bodies []Body
	points []Point
}

// NewStore returns an empty store with room for the given counts.
func NewStore(bodies, points int) *Store {
	return &Store{
		bodies: make([]Body, 0, bodies),
		points: make([]Point, 0, points),
	}
}

// AddBody appends b, assigns its ID and returns it.
func (s *Store) AddBody(b Body) BodyID {
	b.ID = BodyID(len(s.bodies))
	s.bodies = append(s.bodies, b)
	return b.ID
}

// AddPoint appends a point at position p; its Index is its position in the store.
func (s *Store) AddPoint(p Point) int {
	p.Index = len(s.points)
	s.points = append(s.points, p)
	return p.Index
}

// Body returns a pointer to the body with the given ID, or nil if it does not exist.
func (s *Store) Body(id BodyID) *Body {
	if id < 0 || int(id) >= len(s.bodies) {
		return nil
	}
	return &s.bodies[id]
}

// Bodies returns the backing slice so callers can update bodies in place.
func (s *Store) Bodies() []Body {
	return s.bodies
}

// Points returns the backing slice so callers can update points in place.
func (s *Store) Points() []Point {
	return s.points
}

// BodyCount returns the number of moving bodies.
func (s *Store) BodyCount() int {
	return len(s.bodies)
}

// PointCount returns the number of ambient points.
func (s *Store) PointCount() int {
	return len(s.points)
}

// BodyTransforms appends the current transform of every body to dst and returns it.
// Passing a reused slice avoids per-frame allocations.
func (s *Store) BodyTransforms(dst []Transform) []Transform {
	dst = dst[:0]
	for i := range s.bodies {
		b := &s.bodies[i]
		dst = append(dst, Transform{Position: b.Position, Rotation: b.Rotation})
	}
	return dst
}

// PointTransforms appends the current transform of every point to dst and returns it.
func (s *Store) PointTransforms(dst []Transform) []Transform {
	dst = dst[:0]
	for i := range s.points {
		dst = append(dst, Transform{Position: s.points[i].Position})
	}
	return dst
}
