package contagion

import "github.com/gfawcettpq/emotional-contagion/pkg/emotion"

// Stats summarizes one tick.
type Stats struct {
	Tick uint64

	AliveCount int
	// EmotionCount counts live cells whose dominant emotion exceeds the
	// significance threshold.
	EmotionCount   int
	Births         int
	Deaths         int
	EmotionSpreads int
	Tunnels        int

	// KindTotals sums the intensity of each kind over every cell.
	KindTotals     map[emotion.Kind]float64
	TotalIntensity float64
}

// Changed reports whether the tick produced any births, deaths, spreads or
// tunnels.
func (s Stats) Changed() bool {
	return s.Births > 0 || s.Deaths > 0 || s.EmotionSpreads > 0 || s.Tunnels > 0
}

func (g *Grid) collect(st *Stats) {
	st.AliveCount = 0
	st.EmotionCount = 0
	st.TotalIntensity = 0
	st.KindTotals = make(map[emotion.Kind]float64)
	for i := range g.cur {
		c := &g.cur[i]
		if c.Barrier {
			continue
		}
		c.Emotions.Each(func(e emotion.Emotion) {
			st.KindTotals[e.Kind] += e.Intensity
			st.TotalIntensity += e.Intensity
		})
		if !c.Alive {
			continue
		}
		st.AliveCount++
		if d, ok := c.Dominant(); ok && d.Intensity > g.params.Threshold {
			st.EmotionCount++
		}
	}
}
