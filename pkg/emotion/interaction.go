package emotion

import "math"

// Shift is one adjustment an interaction wants to make to a set.
type Shift struct {
	Kind  Kind
	Delta float64
	// Ceiling caps the resulting intensity below the set's own maximum. Zero
	// means no extra cap.
	Ceiling float64
	// Create allows the shift to add Kind when the set lacks it.
	Create bool
}

// Interaction is a named cross-kind rule. Effect reads intensities through
// level and returns the shifts to apply; it must not mutate anything.
type Interaction struct {
	Name   string
	Effect func(level func(Kind) float64) []Shift
}

// Interactions is the built-in interaction table, applied once per tick.
var Interactions = []Interaction{
	{Name: "joy neutralizes sadness", Effect: joyNeutralizesSadness},
	{Name: "anger erodes joy and love", Effect: angerErodes},
	{Name: "love heals sadness and anger", Effect: loveHeals},
	{Name: "overload breeds anxiety", Effect: overloadBreedsAnxiety},
}

func joyNeutralizesSadness(level func(Kind) float64) []Shift {
	joy, sadness := level(Joy), level(Sadness)
	if joy <= 5.0 || sadness <= 3.0 {
		return nil
	}
	cut := math.Min(math.Min(joy, sadness)*0.3, 2.0)
	return []Shift{{Kind: Joy, Delta: -cut}, {Kind: Sadness, Delta: -cut}}
}

func angerErodes(level func(Kind) float64) []Shift {
	anger := level(Anger)
	if anger < 7.0 {
		return nil
	}
	return []Shift{{Kind: Joy, Delta: -anger * 0.2}, {Kind: Love, Delta: -anger * 0.15}}
}

func loveHeals(level func(Kind) float64) []Shift {
	love := level(Love)
	if love < 6.0 {
		return nil
	}
	return []Shift{{Kind: Sadness, Delta: -love * 0.1}, {Kind: Anger, Delta: -love * 0.15}}
}

func overloadBreedsAnxiety(level func(Kind) float64) []Shift {
	if level(Joy)+level(Sadness)+level(Anger)+level(Love) <= 15.0 {
		return nil
	}
	return []Shift{{Kind: Anxiety, Delta: 0.5, Ceiling: 10.0, Create: true}}
}

// Interact applies the built-in interaction table.
func (s *Set) Interact() { s.ApplyInteractions(Interactions) }

type pendingShift struct {
	kind    Kind
	delta   float64
	ceiling float64
	create  bool
}

// ApplyInteractions evaluates every rule against the current intensities,
// then applies the combined shifts. Rules never observe each other's
// effects, so the table order does not matter. Results are floored at zero.
func (s *Set) ApplyInteractions(rules []Interaction) {
	var pending []pendingShift
	for _, rule := range rules {
		for _, sh := range rule.Effect(s.Intensity) {
			idx := -1
			for i := range pending {
				if pending[i].kind == sh.Kind {
					idx = i
					break
				}
			}
			if idx < 0 {
				pending = append(pending, pendingShift{kind: sh.Kind, ceiling: s.Max()})
				idx = len(pending) - 1
			}
			p := &pending[idx]
			p.delta += sh.Delta
			p.create = p.create || sh.Create
			if sh.Ceiling > 0 && sh.Ceiling < p.ceiling {
				p.ceiling = sh.Ceiling
			}
		}
	}

	for _, p := range pending {
		i, ok := s.find(p.kind)
		if !ok && !p.create {
			continue
		}
		cur := 0.0
		if ok {
			cur = s.items[i].Intensity
		}
		next := clamp(cur+p.delta, 0, p.ceiling)
		if ok {
			s.items[i].Intensity = next
			continue
		}
		if next > 0 {
			s.insert(i, Emotion{Kind: p.kind, Intensity: next})
		}
	}
}
