package searcher

import "math"

// Hyperparameters for MCTS

const DefaultCutoff = 50 // Rollout horizon in ticks

var DefaultTemperature = math.Sqrt2 // Exploration constant
