package emotion

const (
	// CellMax is the intensity ceiling of a grid cell's set.
	CellMax = 1.0
	// EntityMax is the intensity ceiling of an entity's set.
	EntityMax = 10.0
	// DeadThreshold is the intensity below which an emotion is removed.
	DeadThreshold = 0.01
)

// Emotion is one kind held at an intensity.
type Emotion struct {
	Kind      Kind
	Intensity float64
}

// Dead reports whether the emotion has faded enough to be dropped.
func (e Emotion) Dead() bool { return e.Intensity < DeadThreshold }

// SpreadAmount is the intensity an emotion pushes to a point at distance d:
// intensity * spreadRate / (1 + d). Nothing spreads to d <= 0.
func SpreadAmount(intensity, spreadRate, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return intensity * spreadRate / (1 + d)
}

// Set maps kinds to at most one Emotion each. Entries are kept in canonical
// kind order (see Less) so iteration and tie-breaks are deterministic. Every
// mutation clamps intensities into [0, Max()]. The zero value is an empty set
// with a ceiling of CellMax.
type Set struct {
	max   float64
	items []Emotion
}

// NewSet returns an empty set with the given intensity ceiling.
func NewSet(max float64) Set {
	if max <= 0 {
		max = CellMax
	}
	return Set{max: max}
}

// Max returns the intensity ceiling.
func (s *Set) Max() float64 {
	if s.max <= 0 {
		return CellMax
	}
	return s.max
}

// Len returns the number of kinds held.
func (s *Set) Len() int { return len(s.items) }

func (s *Set) find(k Kind) (int, bool) {
	for i, e := range s.items {
		if e.Kind == k {
			return i, true
		}
		if Less(k, e.Kind) {
			return i, false
		}
	}
	return len(s.items), false
}

func (s *Set) insert(at int, e Emotion) {
	s.items = append(s.items, Emotion{})
	copy(s.items[at+1:], s.items[at:])
	s.items[at] = e
}

// Add merges amount into kind k: an existing entry is summed and clamped,
// otherwise a new clamped entry is created. Additions that clamp to zero do
// not create entries.
func (s *Set) Add(k Kind, amount float64) {
	i, ok := s.find(k)
	if ok {
		s.items[i].Intensity = clamp(s.items[i].Intensity+amount, 0, s.Max())
		return
	}
	v := clamp(amount, 0, s.Max())
	if v <= 0 {
		return
	}
	s.insert(i, Emotion{Kind: k, Intensity: v})
}

// Put replaces the intensity of k.
func (s *Set) Put(k Kind, intensity float64) {
	v := clamp(intensity, 0, s.Max())
	i, ok := s.find(k)
	if ok {
		s.items[i].Intensity = v
		return
	}
	s.insert(i, Emotion{Kind: k, Intensity: v})
}

// Remove drops k from the set.
func (s *Set) Remove(k Kind) {
	if i, ok := s.find(k); ok {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// Has reports whether k is present.
func (s *Set) Has(k Kind) bool {
	_, ok := s.find(k)
	return ok
}

// Intensity returns the intensity of k, or 0 when absent.
func (s *Set) Intensity(k Kind) float64 {
	if i, ok := s.find(k); ok {
		return s.items[i].Intensity
	}
	return 0
}

// Dominant returns the emotion with the highest intensity. Equal intensities
// resolve to the kind that sorts first under Less.
func (s *Set) Dominant() (Emotion, bool) {
	if len(s.items) == 0 {
		return Emotion{}, false
	}
	best := s.items[0]
	for _, e := range s.items[1:] {
		if e.Intensity > best.Intensity {
			best = e
		}
	}
	return best, true
}

// Total returns the summed intensity of all kinds.
func (s *Set) Total() float64 {
	total := 0.0
	for _, e := range s.items {
		total += e.Intensity
	}
	return total
}

// Empty reports whether the set holds nothing of significance.
func (s *Set) Empty() bool {
	return len(s.items) == 0 || s.Total() < DeadThreshold
}

// Scale multiplies every intensity by factor(kind).
func (s *Set) Scale(factor func(Kind) float64) {
	for i := range s.items {
		s.items[i].Intensity = clamp(s.items[i].Intensity*factor(s.items[i].Kind), 0, s.Max())
	}
}

// Fade subtracts rate(kind)*dt from every intensity, flooring at zero.
func (s *Set) Fade(dt float64, rate func(Kind) float64) {
	for i := range s.items {
		s.items[i].Intensity = clamp(s.items[i].Intensity-rate(s.items[i].Kind)*dt, 0, s.Max())
	}
}

// Prune removes dead emotions and returns how many were dropped.
func (s *Set) Prune() int {
	kept := s.items[:0]
	for _, e := range s.items {
		if !e.Dead() {
			kept = append(kept, e)
		}
	}
	dropped := len(s.items) - len(kept)
	s.items = kept
	return dropped
}

// Reset empties the set, keeping its ceiling and backing storage.
func (s *Set) Reset() { s.items = s.items[:0] }

// CopyFrom overwrites s with the contents of o without sharing storage.
func (s *Set) CopyFrom(o *Set) {
	s.max = o.max
	s.items = append(s.items[:0], o.items...)
}

// Clone returns an independent copy.
func (s *Set) Clone() Set {
	var c Set
	c.CopyFrom(s)
	return c
}

// Emotions returns a copy of the entries in canonical order.
func (s *Set) Emotions() []Emotion {
	out := make([]Emotion, len(s.items))
	copy(out, s.items)
	return out
}

// Each calls fn for every entry in canonical order.
func (s *Set) Each(fn func(Emotion)) {
	for _, e := range s.items {
		fn(e)
	}
}
