/*
Sgbench runs the grammar-approx benchmark sweep and
prints the resulting size and timing tables, or drops into an interactive
REPL that builds a grammar for each line of input typed at it.

Usage:

	sgbench [flags]

The flags are:

	-v, --version
		Give the current version and exit.

	-c, --config FILE
		Load sweep parameters from the given TOML file. Flags given
		explicitly on the command line override the config file.

	-a, --algorithms NAMES
		Comma-separated list of algorithms to run. Defaults to all four.

	--alphabet ALPHABET
		Alphabet to draw random input strings from.

	--sizes SIZES
		Comma-separated list of input lengths to sweep.

	--samples N
		Number of random samples per size.

	--seed N
		Seed for the random input generator.

	-r, --repl
		Instead of running a sweep, start an interactive prompt: each line
		typed is built into a grammar by every selected algorithm, and the
		resulting size of each is printed.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	grammarapprox "github.com/andrewwinslow/grammar-approx"
	"github.com/andrewwinslow/grammar-approx/internal/bench"
	"github.com/andrewwinslow/grammar-approx/internal/version"
	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
)

var (
	flagVersion    = pflag.BoolP("version", "v", false, "Give the current version and exit.")
	flagConfig     = pflag.StringP("config", "c", "", "Load sweep parameters from the given TOML file.")
	flagAlgorithms = pflag.StringP("algorithms", "a", "", "Comma-separated list of algorithms to run.")
	flagAlphabet   = pflag.String("alphabet", "", "Alphabet to draw random input strings from.")
	flagSizes      = pflag.String("sizes", "", "Comma-separated list of input lengths to sweep.")
	flagSamples    = pflag.Int("samples", 0, "Number of random samples per size.")
	flagSeed       = pflag.Int64("seed", 0, "Seed for the random input generator.")
	flagREPL       = pflag.BoolP("repl", "r", false, "Start an interactive prompt instead of running a sweep.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := bench.DefaultSweepConfig()
	if *flagConfig != "" {
		if _, err := toml.DecodeFile(*flagConfig, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: reading config: %s\n", err)
			os.Exit(1)
		}
	}
	applyFlagOverrides(&cfg)

	algorithms := grammarapprox.Algorithms
	if pflag.Lookup("algorithms").Changed {
		var err error
		algorithms, err = parseAlgorithmList(*flagAlgorithms)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
	}

	if *flagREPL {
		if err := runREPL(algorithms); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
		return
	}

	report, err := bench.Sweep(algorithms, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Mean grammar size:")
	fmt.Println(bench.RenderSizeTable(report))
	fmt.Println()
	fmt.Println("Mean running time (ms):")
	fmt.Println(bench.RenderTimeTableMillis(report))
}

// applyFlagOverrides lets explicitly-given command line flags win over
// whatever a loaded TOML config set.
func applyFlagOverrides(cfg *bench.SweepConfig) {
	if pflag.Lookup("alphabet").Changed {
		cfg.Alphabet = *flagAlphabet
	}
	if pflag.Lookup("samples").Changed {
		cfg.SamplesPerSize = *flagSamples
	}
	if pflag.Lookup("seed").Changed {
		cfg.Seed = *flagSeed
	}
	if pflag.Lookup("sizes").Changed {
		sizes, err := parseIntList(*flagSizes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: --sizes: %s\n", err)
			os.Exit(1)
		}
		cfg.Sizes = sizes
	}
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseAlgorithmList(s string) ([]grammarapprox.Algorithm, error) {
	parts := strings.Split(s, ",")
	out := make([]grammarapprox.Algorithm, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		a, err := grammarapprox.ParseAlgorithm(p)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// runREPL reads one input string per line and prints the grammar each
// selected algorithm builds for it.
func runREPL(algorithms []grammarapprox.Algorithm) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "sgp> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, a := range algorithms {
			g, err := grammarapprox.Build(a, line)
			if err != nil {
				fmt.Printf("%-12s ERROR: %s\n", a, err)
				continue
			}
			fmt.Printf("%-12s size=%d\n", a, g.Size())
			for _, k := range g.Keys() {
				rhs, _ := g.Rule(k)
				fmt.Printf("    %s -> %s\n", k, strings.Join(rhs, " "))
			}
		}
	}
}
