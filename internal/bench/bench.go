// Package bench implements a benchmark harness: sweeping every algorithm
// over random strings of increasing length and
// recording mean grammar size and mean running time.
package bench

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	grammarapprox "github.com/andrewwinslow/grammar-approx"
)

// RandomString returns a uniformly random string of length n drawn from
// alphabet, using rng. Passing the same seeded rng state (i.e. calling this
// against a *rand.Rand seeded identically) always yields the same string:
// there is no global or shared RNG state here.
func RandomString(alphabet string, n int, rng *rand.Rand) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}

// SweepConfig parameterizes a Sweep. It is the structure cmd/sgbench loads
// from an optional TOML config file.
type SweepConfig struct {
	Sizes          []int         `toml:"sizes"`
	SamplesPerSize int           `toml:"samples_per_size"`
	Alphabet       string        `toml:"alphabet"`
	Seed           int64         `toml:"seed"`
	Concurrency    int           `toml:"concurrency"`
	Timeout        time.Duration `toml:"timeout"`
}

// DefaultSweepConfig sweeps n in {10, 20, ..., 200}, 10 samples per n, over
// the lowercase ASCII alphabet.
func DefaultSweepConfig() SweepConfig {
	sizes := make([]int, 0, 20)
	for n := 10; n <= 200; n += 10 {
		sizes = append(sizes, n)
	}
	return SweepConfig{
		Sizes:          sizes,
		SamplesPerSize: 10,
		Alphabet:       "abcdefghijklmnopqrstuvwxyz",
		Seed:           1,
		Concurrency:    4,
		Timeout:        30 * time.Second,
	}
}

// Cell is one (algorithm, n) aggregate of a Sweep.
type Cell struct {
	Algorithm   grammarapprox.Algorithm
	N           int
	MeanSize    float64
	MeanSeconds float64
}

// Report is the full result of a Sweep: one Cell per (algorithm, n) pair.
type Report struct {
	Algorithms []grammarapprox.Algorithm
	Sizes      []int
	Cells      []Cell
}

func (r Report) cell(a grammarapprox.Algorithm, n int) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Algorithm == a && c.N == n {
			return c, true
		}
	}
	return Cell{}, false
}

// SizeTable returns the mean-grammar-size table: one header row naming the
// algorithms, then one row per swept n.
func (r Report) SizeTable() [][]string {
	return r.table(func(c Cell) string { return fmt.Sprintf("%.1f", c.MeanSize) })
}

// TimeTableMillis returns the mean-running-time table, in milliseconds.
func (r Report) TimeTableMillis() [][]string {
	return r.table(func(c Cell) string { return fmt.Sprintf("%.2f", c.MeanSeconds*1000) })
}

func (r Report) table(render func(Cell) string) [][]string {
	header := make([]string, 0, len(r.Algorithms)+1)
	header = append(header, "n")
	for _, a := range r.Algorithms {
		header = append(header, a.String())
	}

	rows := [][]string{header}
	for _, n := range r.Sizes {
		row := make([]string, 0, len(r.Algorithms)+1)
		row = append(row, fmt.Sprintf("%d", n))
		for _, a := range r.Algorithms {
			c, ok := r.cell(a, n)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, render(c))
		}
		rows = append(rows, row)
	}
	return rows
}

// job is one (algorithm, n, sample-index) unit of sweep work.
type job struct {
	algorithm grammarapprox.Algorithm
	n         int
	input     string
}

type sample struct {
	algorithm grammarapprox.Algorithm
	n         int
	size      int
	seconds   float64
}

// AbortError is returned by Sweep when an algorithm violates its own
// closure invariant on a generated input: this is a programmer error, not
// a runtime condition, and the sweep aborts rather than continuing past it.
type AbortError struct {
	Algorithm grammarapprox.Algorithm
	Input     string
	Err       error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("sweep aborted: algorithm %s on input %q: %s", e.Algorithm, e.Input, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

// Sweep runs every algorithm against cfg.SamplesPerSize random strings at
// each of cfg.Sizes, recording mean grammar size and mean wall-clock time.
// Work is distributed across a worker pool bounded by cfg.Concurrency;
// each (algorithm, n, sample) invocation is treated as an independent,
// stateless call, so no ordering between them is assumed or required.
func Sweep(algorithms []grammarapprox.Algorithm, cfg SweepConfig) (Report, error) {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var jobs []job
	for _, n := range cfg.Sizes {
		for i := 0; i < cfg.SamplesPerSize; i++ {
			input := RandomString(cfg.Alphabet, n, rng)
			for _, a := range algorithms {
				jobs = append(jobs, job{algorithm: a, n: n, input: input})
			}
		}
	}

	sem := make(chan struct{}, concurrency)
	results := make(chan sample, len(jobs))
	errs := make(chan *AbortError, 1)
	var aborted atomic.Bool
	var wg sync.WaitGroup

	for _, j := range jobs {
		j := j
		sem <- struct{}{}
		if aborted.Load() {
			<-sem
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			g, err := grammarapprox.Build(j.algorithm, j.input)
			elapsed := time.Since(start)
			if err == nil {
				err = g.Validate()
			}
			if err != nil {
				aborted.Store(true)
				select {
				case errs <- &AbortError{Algorithm: j.algorithm, Input: j.input, Err: err}:
				default:
				}
				return
			}
			results <- sample{algorithm: j.algorithm, n: j.n, size: g.Size(), seconds: elapsed.Seconds()}
		}()
	}

	wg.Wait()
	close(results)
	close(errs)

	if abort := <-errs; abort != nil {
		return Report{}, abort
	}

	type agg struct {
		totalSize    int
		totalSeconds float64
		count        int
	}
	aggregates := make(map[grammarapprox.Algorithm]map[int]*agg)
	for _, a := range algorithms {
		aggregates[a] = make(map[int]*agg)
	}
	for s := range results {
		byN := aggregates[s.algorithm]
		cur, ok := byN[s.n]
		if !ok {
			cur = &agg{}
			byN[s.n] = cur
		}
		cur.totalSize += s.size
		cur.totalSeconds += s.seconds
		cur.count++
	}

	report := Report{Algorithms: algorithms, Sizes: cfg.Sizes}
	for _, a := range algorithms {
		for _, n := range cfg.Sizes {
			cur, ok := aggregates[a][n]
			if !ok || cur.count == 0 {
				continue
			}
			report.Cells = append(report.Cells, Cell{
				Algorithm:   a,
				N:           n,
				MeanSize:    float64(cur.totalSize) / float64(cur.count),
				MeanSeconds: cur.totalSeconds / float64(cur.count),
			})
		}
	}
	return report, nil
}
