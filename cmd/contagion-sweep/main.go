package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gfawcettpq/emotional-contagion/internal/scenario"
	prng "github.com/gfawcettpq/emotional-contagion/pkg/core"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

type paramSet struct {
	seed   int64
	mode   engine.Mode
	spread float64
	radius int
}

func (p paramSet) String() string {
	return fmt.Sprintf("seed=%d mode=%s spread=%.2f radius=%d", p.seed, p.mode, p.spread, p.radius)
}

type runResult struct {
	params        paramSet
	alive         int
	emotional     int
	peakEmotional int
	peakTick      uint64
	intensity     float64
	spreads       int
	tunnels       int
	curve         []float64
}

func main() {
	steps := flag.Int("steps", 200, "ticks to simulate per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 4, "number of seeds per parameter set, starting at -seed")
	seed := flag.Int64("seed", 1, "first seed")
	spreads := flag.String("spread", "0.1,0.3,0.5", "comma separated spread factors")
	radii := flag.String("radius", "1,2", "comma separated diffusion radii (contagion mode)")
	top := flag.Int("top", 5, "results to print")
	scenarioPath := flag.String("scenario", "", "YAML scenario used as the base configuration")
	chartPath := flag.String("chart", "", "write mean intensity curves to this PNG file")
	flag.Parse()

	base := engine.DefaultConfig()
	base.Width, base.Height = 64, 48
	var sc *scenario.Scenario
	if *scenarioPath != "" {
		loaded, err := scenario.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("contagion-sweep: %v", err)
		}
		sc = loaded
		base = sc.Config()
	}

	spreadOptions, err := parseFloats(*spreads)
	if err != nil {
		log.Fatalf("contagion-sweep: -spread: %v", err)
	}
	radiusOptions, err := parseInts(*radii)
	if err != nil {
		log.Fatalf("contagion-sweep: -radius: %v", err)
	}
	sets := expand(*seed, *seeds, spreadOptions, radiusOptions)

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)
	start := time.Now()
	results := sweep(base, sc, sets, *steps, *workers)
	report(os.Stdout, results, *top, time.Since(start))
	groups := summarize(results)
	reportGroups(os.Stdout, groups)
	if *chartPath != "" {
		if err := saveChart(*chartPath, groups); err != nil {
			log.Fatalf("contagion-sweep: %v", err)
		}
		fmt.Printf("\nChart written to %s\n", *chartPath)
	}
}

func saveChart(path string, groups []group) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeChart(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func expand(first int64, seeds int, spreads []float64, radii []int) []paramSet {
	var sets []paramSet
	for s := int64(0); s < int64(seeds); s++ {
		for _, spread := range spreads {
			sets = append(sets, paramSet{seed: first + s, mode: engine.ModeConway, spread: spread, radius: 1})
			for _, r := range radii {
				sets = append(sets, paramSet{seed: first + s, mode: engine.ModeContagion, spread: spread, radius: r})
			}
		}
	}
	return sets
}

func sweep(base engine.Config, sc *scenario.Scenario, sets []paramSet, steps, workers int) []runResult {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				res, err := runOne(base, sc, params, steps)
				if err != nil {
					log.Printf("skip %s: %v", params, err)
					continue
				}
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []runResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].intensity != all[j].intensity {
			return all[i].intensity > all[j].intensity
		}
		return all[i].params.String() < all[j].params.String()
	})
	return all
}

func runOne(base engine.Config, sc *scenario.Scenario, params paramSet, steps int) (runResult, error) {
	cfg := base
	cfg.Seed = params.seed
	cfg.Mode = params.mode
	cfg.Params.SpreadFactor = params.spread
	cfg.Params.Radius = params.radius

	rng := prng.NewRNG(params.seed)
	g, err := engine.NewWithConfig(cfg, rng)
	if err != nil {
		return runResult{}, err
	}
	ww, wh := g.WorldSize()
	crowd := engine.NewCrowd(ww, wh, rng)
	if sc != nil {
		cat, err := sc.Catalog()
		if err != nil {
			return runResult{}, err
		}
		g.SetCatalog(cat)
		crowd.SetCatalog(cat)
		if sc.Maze {
			g.BarrierMaze()
		}
	}
	g.Randomize()
	if sc != nil {
		sc.Populate(g, crowd)
	}

	res := runResult{params: params, curve: make([]float64, 0, steps)}
	for i := 0; i < steps; i++ {
		if crowd.Len() > 0 {
			crowd.Step(0.1)
			g.UpdateOccupants(crowd.Occupants())
		}
		st := g.Update()
		res.spreads += st.EmotionSpreads
		res.tunnels += st.Tunnels
		res.curve = append(res.curve, st.TotalIntensity)
		if st.EmotionCount > res.peakEmotional {
			res.peakEmotional = st.EmotionCount
			res.peakTick = st.Tick
		}
	}
	st := g.Stats()
	res.alive = st.AliveCount
	res.emotional = st.EmotionCount
	res.intensity = st.TotalIntensity
	return res, nil
}

func report(w io.Writer, all []runResult, top int, elapsed time.Duration) {
	fmt.Fprintf(w, "\nTop %d results (elapsed %s):\n", min(top, len(all)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < top; i++ {
		res := all[i]
		fmt.Fprintf(w, "%2d) intensity=%.2f alive=%d emotional=%d peak=%d@%d spreads=%d tunnels=%d %s\n",
			i+1, res.intensity, res.alive, res.emotional, res.peakEmotional, res.peakTick, res.spreads, res.tunnels, res.params)
	}
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if v < 1 {
			return nil, fmt.Errorf("radius %d below 1", v)
		}
		out = append(out, v)
	}
	return out, nil
}
