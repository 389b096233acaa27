package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecayCalculatorFirstSolverGetsFullScore(t *testing.T) {
	calc := DecayCalculator{}
	c := &Challenge{ID: "c1", OriginalScore: 1000, MinScoreRate: 0.2, Difficulty: 10}

	assert.Equal(t, 1000, calc.CurrentScore(c, 0))
}

func TestDecayCalculatorMonotonicAndFloored(t *testing.T) {
	calc := DecayCalculator{}
	c := &Challenge{ID: "c1", OriginalScore: 1000, MinScoreRate: 0.2, Difficulty: 10}

	prev := calc.CurrentScore(c, 0)
	for n := 1; n <= 200; n++ {
		score := calc.CurrentScore(c, n)
		assert.LessOrEqual(t, score, prev, "score must not rise at solve count %d", n)
		assert.GreaterOrEqual(t, score, 200, "score must not drop below the floor at solve count %d", n)
		prev = score
	}
}

func TestDecayCalculatorTenSolvesStayAboveFloor(t *testing.T) {
	calc := DecayCalculator{}
	c := &Challenge{ID: "c1", OriginalScore: 1000, MinScoreRate: 0.2, Difficulty: 10, DisableBloodBonus: true}

	prev := calc.CurrentScore(c, 0)
	require.Equal(t, 1000, prev)
	for n := 1; n <= 10; n++ {
		score := calc.CurrentScore(c, n)
		assert.LessOrEqual(t, score, prev)
		assert.GreaterOrEqual(t, score, 200)
		prev = score
	}
}

func TestDecayCalculatorLowerDifficultyDecaysFaster(t *testing.T) {
	calc := DecayCalculator{}
	slow := &Challenge{ID: "a", OriginalScore: 1000, MinScoreRate: 0.1, Difficulty: 20}
	fast := &Challenge{ID: "b", OriginalScore: 1000, MinScoreRate: 0.1, Difficulty: 2}

	// Difficulty dampens the decay term, so a low value reaches the floor in
	// fewer solves than a high one.
	for n := 1; n <= 50; n++ {
		assert.LessOrEqual(t, calc.CurrentScore(fast, n), calc.CurrentScore(slow, n),
			"low difficulty must converge at least as fast at solve count %d", n)
	}
}

func TestDecayCalculatorNonPositiveDifficultyIsStatic(t *testing.T) {
	calc := DecayCalculator{}
	c := &Challenge{ID: "c1", OriginalScore: 500, MinScoreRate: 0.5, Difficulty: 0}

	for n := 0; n <= 5; n++ {
		assert.Equal(t, 500, calc.CurrentScore(c, n))
	}
}

func TestDecayCalculatorClampsMinScoreRate(t *testing.T) {
	calc := DecayCalculator{}

	over := &Challenge{ID: "c1", OriginalScore: 100, MinScoreRate: 1.5, Difficulty: 5}
	assert.Equal(t, 100, calc.CurrentScore(over, 50))

	under := &Challenge{ID: "c2", OriginalScore: 100, MinScoreRate: -0.5, Difficulty: 5}
	assert.GreaterOrEqual(t, calc.CurrentScore(under, 50), 0)
}
