// Package emotion defines the emotion kinds carried by the contagion grid,
// their static catalog of colours, spread/decay rates and contagion rules,
// and the Set type that holds several weighted emotions at once.
package emotion

import "strings"

// Kind identifies an emotion. The nine built-in kinds are declared below; any
// other non-empty value is a custom kind that resolves to the catalog's
// fallback entry.
type Kind string

const (
	Joy           Kind = "joy"
	Sadness       Kind = "sadness"
	Anger         Kind = "anger"
	Fear          Kind = "fear"
	Disgust       Kind = "disgust"
	Anxiety       Kind = "anxiety"
	Love          Kind = "love"
	Envy          Kind = "envy"
	Embarrassment Kind = "embarrassment"
)

var builtin = [...]Kind{Joy, Sadness, Anger, Fear, Disgust, Anxiety, Love, Envy, Embarrassment}

var displayNames = map[Kind]string{
	Joy:           "Joy",
	Sadness:       "Sadness",
	Anger:         "Anger",
	Fear:          "Fear",
	Disgust:       "Disgust",
	Anxiety:       "Anxiety",
	Love:          "Love",
	Envy:          "Envy",
	Embarrassment: "Embarrassment",
}

// Builtin returns the built-in kinds in canonical order.
func Builtin() []Kind {
	out := make([]Kind, len(builtin))
	copy(out, builtin[:])
	return out
}

// Custom returns a kind for the given name. Names matching a built-in kind
// (case-insensitively) return that kind.
func Custom(name string) Kind {
	if k, ok := ParseKind(name); ok {
		return k
	}
	return Kind(name)
}

// ParseKind resolves a built-in kind from its name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	lower := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, k := range builtin {
		if k == lower {
			return k, true
		}
	}
	return "", false
}

// IsBuiltin reports whether k is one of the nine built-in kinds.
func (k Kind) IsBuiltin() bool { return k.index() >= 0 }

// Name returns the display name of the kind.
func (k Kind) Name() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return string(k)
}

// Index returns the position of k in Builtin, or len(Builtin()) for custom kinds.
func (k Kind) Index() int {
	if i := k.index(); i >= 0 {
		return i
	}
	return len(builtin)
}

func (k Kind) index() int {
	for i, b := range builtin {
		if b == k {
			return i
		}
	}
	return -1
}

// Less orders kinds canonically: built-in kinds in declaration order, then
// custom kinds sorted by name. Every tie-break in the package follows it.
func Less(a, b Kind) bool {
	ai, bi := a.index(), b.index()
	switch {
	case ai >= 0 && bi >= 0:
		return ai < bi
	case ai >= 0:
		return true
	case bi >= 0:
		return false
	default:
		return a < b
	}
}
