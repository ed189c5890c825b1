package dynamo

// System is an ordered snapshot of bodies. Insertion order is the order forces
// are summed in, which keeps floating-point results reproducible.
type System struct {
	Bodies []*Body
	nextID BodyID
}

func NewSystem() *System {
	return &System{Bodies: make([]*Body, 0), nextID: 1}
}

// Add assigns the next free ID to b and appends it.
func (s *System) Add(b *Body) *Body {
	if s.nextID == 0 {
		s.nextID = 1
	}
	b.ID = s.nextID
	s.nextID++
	s.Bodies = append(s.Bodies, b)
	return b
}

func (s *System) Len() int { return len(s.Bodies) }

func (s *System) Find(id BodyID) (*Body, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Clone deep-copies every body. The copy shares no mutable state with s.
func (s *System) Clone() *System {
	c := &System{
		Bodies: make([]*Body, len(s.Bodies)),
		nextID: s.nextID,
	}
	for i, b := range s.Bodies {
		c.Bodies[i] = b.Clone()
	}
	return c
}

func (s *System) Validate() error {
	for _, b := range s.Bodies {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FirstInvalid returns the first body whose state holds NaN or Inf.
func (s *System) FirstInvalid() (*Body, bool) {
	for _, b := range s.Bodies {
		if !b.IsValid() {
			return b, true
		}
	}
	return nil, false
}
