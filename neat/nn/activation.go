package nn

import "math"

// Steepness is the slope factor applied by Squash.
const Steepness = 4.9

// Sigmoid is the logistic function 1 / (1 + e^-z).
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Squash is the neuron transfer function, a steepened sigmoid rescaled to
// (-1, 1): 2 / (1 + e^(-4.9z)) - 1. Squash(0) is 0.
func Squash(z float64) float64 {
	return 2*Sigmoid(Steepness*z) - 1
}
