package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]int{}))
	assert.Equal(t, 2.5, CalculateMean([]int{1, 2, 3, 4}))
	assert.Equal(t, 1.5, CalculateMean([]float64{1, 2}))
}

func TestCalculatePercentile(t *testing.T) {
	data := []int{10, 20, 30, 40}
	assert.Equal(t, 0.0, CalculatePercentile([]int{}, 50))
	assert.Equal(t, 10.0, CalculatePercentile(data, 0))
	assert.Equal(t, 40.0, CalculatePercentile(data, 100))
	assert.InDelta(t, 25.0, CalculatePercentile(data, 50), 1e-9)
	assert.Equal(t, 7.0, CalculatePercentile([]int{7}, 95))
}
