package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxDistanceKm(t *testing.T) {
	assert.Equal(t, 0.0, ApproxDistanceKm(31.5, 34.45, 31.5, 34.45))

	// one degree of latitude is exactly the scale constant
	assert.InDelta(t, 111.0, ApproxDistanceKm(31.0, 34.45, 32.0, 34.45), 1e-9)

	// symmetric in its arguments
	d1 := ApproxDistanceKm(31.5, 34.45, 31.3, 34.3)
	d2 := ApproxDistanceKm(31.3, 34.3, 31.5, 34.45)
	assert.Equal(t, d1, d2)

	// diagonal follows the flat-plane hypotenuse
	want := math.Sqrt(0.1*0.1+0.1*0.1) * KmPerDegree
	assert.InDelta(t, want, ApproxDistanceKm(31.5, 34.45, 31.6, 34.55), 1e-9)
}

func TestWithinKm(t *testing.T) {
	// ~0.05 degrees of latitude is ~5.55 km
	assert.True(t, WithinKm(31.50, 34.45, 31.55, 34.45, 6))
	assert.False(t, WithinKm(31.50, 34.45, 31.55, 34.45, 5))
}
