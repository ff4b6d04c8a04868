package bench

import (
	"math/rand"
	"testing"

	grammarapprox "github.com/andrewwinslow/grammar-approx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString_Deterministic(t *testing.T) {
	s1 := RandomString("abc", 20, rand.New(rand.NewSource(42)))
	s2 := RandomString("abc", 20, rand.New(rand.NewSource(42)))
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 20)
}

func TestRandomString_DifferentSeeds(t *testing.T) {
	s1 := RandomString("abcdefghij", 40, rand.New(rand.NewSource(1)))
	s2 := RandomString("abcdefghij", 40, rand.New(rand.NewSource(2)))
	assert.NotEqual(t, s1, s2)
}

func TestSweep_Basic(t *testing.T) {
	cfg := SweepConfig{
		Sizes:          []int{5, 10},
		SamplesPerSize: 3,
		Alphabet:       "ab",
		Seed:           7,
		Concurrency:    2,
	}
	algorithms := []grammarapprox.Algorithm{
		grammarapprox.AlgorithmBisection,
		grammarapprox.AlgorithmLehman1,
		grammarapprox.AlgorithmSakamoto,
	}

	report, err := Sweep(algorithms, cfg)
	require.NoError(t, err)
	assert.Len(t, report.Cells, len(algorithms)*len(cfg.Sizes))

	for _, c := range report.Cells {
		assert.Greater(t, c.MeanSize, 0.0)
		assert.GreaterOrEqual(t, c.MeanSeconds, 0.0)
	}

	sizeTable := report.SizeTable()
	assert.Len(t, sizeTable, len(cfg.Sizes)+1)
	assert.Equal(t, "n", sizeTable[0][0])

	timeTable := report.TimeTableMillis()
	assert.Len(t, timeTable, len(cfg.Sizes)+1)
}

func TestRenderTables_NonEmpty(t *testing.T) {
	cfg := SweepConfig{
		Sizes:          []int{5},
		SamplesPerSize: 2,
		Alphabet:       "ab",
		Seed:           3,
		Concurrency:    1,
	}
	report, err := Sweep([]grammarapprox.Algorithm{grammarapprox.AlgorithmBisection}, cfg)
	require.NoError(t, err)

	assert.NotEmpty(t, RenderSizeTable(report))
	assert.NotEmpty(t, RenderTimeTableMillis(report))
}

func TestDefaultSweepConfig(t *testing.T) {
	cfg := DefaultSweepConfig()
	assert.Equal(t, 20, len(cfg.Sizes))
	assert.Equal(t, 10, cfg.Sizes[0])
	assert.Equal(t, 200, cfg.Sizes[len(cfg.Sizes)-1])
	assert.Equal(t, 10, cfg.SamplesPerSize)
}
