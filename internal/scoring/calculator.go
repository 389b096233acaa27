package scoring

import "math"

// Calculator computes a challenge's current point value from how many teams
// have solved it so far. Implementations must be monotonically non-increasing
// in solvedCount, never drop below ceil(OriginalScore*MinScoreRate), and
// return the full original score when nobody has solved the challenge yet.
type Calculator interface {
	CurrentScore(c *Challenge, solvedCount int) int
}

// DecayCalculator is the default demand-elastic scoring curve. The value
// converges toward the floor as solves accumulate; a higher Difficulty makes
// the curve drop faster.
type DecayCalculator struct{}

func (DecayCalculator) CurrentScore(c *Challenge, solvedCount int) int {
	floor := scoreFloor(c)
	if solvedCount <= 0 {
		return c.OriginalScore
	}
	if c.Difficulty <= 0 {
		// A non-positive difficulty means the challenge does not decay.
		return c.OriginalScore
	}

	decay := float64(solvedCount) / (float64(solvedCount) + c.Difficulty)
	score := floor + int(math.Ceil(float64(c.OriginalScore-floor)*(1-decay)))

	if score > c.OriginalScore {
		return c.OriginalScore
	}
	if score < floor {
		return floor
	}
	return score
}

func scoreFloor(c *Challenge) int {
	rate := c.MinScoreRate
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return int(math.Ceil(float64(c.OriginalScore) * rate))
}
