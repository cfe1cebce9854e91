package searcher

import "math"

type uct struct {
	temperature float64
	logN        float64
}

// newUCT prepares the exploration term for a root with N total rollouts.
func newUCT(temperature float64, N float64) *uct {
	if N < 0 {
		panic("N cannot be negative")
	}
	return &uct{temperature: temperature, logN: math.Log(N + 1)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	// UCT = q/n + T*sqrt(ln(N+1)/(n+1))
	exploit := 0.0
	if n > 0 {
		exploit = q / n
	}
	return exploit + u.temperature*math.Sqrt(u.logN/(n+1))
}
