package waterfill

// kahanSum returns the compensated sum of values. Plain summation drifts
// perceptibly once rate_increments or a link's contributing rates run to
// hundreds of rounds; this mirrors weighted_waterfilling.cc's get_sum.
func kahanSum(values []float64) float64 {
	var sum, c float64
	for _, v := range values {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum
}
