package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompensatedKm(t *testing.T) {
	failed := LegFailed(errors.New("quota exceeded"))

	tests := []struct {
		name    string
		morning Leg
		evening Leg
		want    float64
	}{
		{name: "both legs under threshold", morning: LegKm(12.5), evening: LegKm(39.99), want: 0},
		{name: "exactly at threshold", morning: LegKm(40), evening: LegKm(40), want: 0},
		{name: "morning over threshold only", morning: LegKm(50), evening: LegKm(30), want: 10},
		{name: "both legs over threshold", morning: LegKm(55.25), evening: LegKm(61.1), want: 36.35},
		{name: "rounding to two decimals", morning: LegKm(40.004), evening: LegKm(40.002), want: 0.01},
		{name: "morning leg unknown", morning: failed, evening: LegKm(70), want: 30},
		{name: "both legs unknown", morning: failed, evening: failed, want: 0},
		{name: "zero value legs", morning: Leg{}, evening: Leg{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompensatedKm(tt.morning, tt.evening))
		})
	}
}

func TestCompensatedKmIsMonotonic(t *testing.T) {
	evening := LegKm(47.3)
	prev := CompensatedKm(LegKm(0), evening)
	for km := 0.5; km <= 120; km += 0.5 {
		got := CompensatedKm(LegKm(km), evening)
		if got < prev {
			t.Fatalf("compensation decreased at morning=%.1f: %.2f < %.2f", km, got, prev)
		}
		prev = got
	}
}

func TestLeg(t *testing.T) {
	ok := LegKm(42.5)
	km, known := ok.Km()
	assert.True(t, known)
	assert.Equal(t, 42.5, km)
	assert.NoError(t, ok.Err())
	if assert.NotNil(t, ok.Ptr()) {
		assert.Equal(t, 42.5, *ok.Ptr())
	}

	cause := errors.New("no route")
	bad := LegFailed(cause)
	_, known = bad.Km()
	assert.False(t, known)
	assert.ErrorIs(t, bad.Err(), cause)
	assert.Nil(t, bad.Ptr())
	assert.Zero(t, bad.KmOrZero())
}

func TestMetersToKm(t *testing.T) {
	assert.Equal(t, 50.0, MetersToKm(50000))
	assert.Equal(t, 12.35, MetersToKm(12345))
	assert.Equal(t, 0.0, MetersToKm(0))
}

func TestSumKm(t *testing.T) {
	assert.Equal(t, 0.3, SumKm(0.1, 0.2))
	assert.Equal(t, 0.0, SumKm())
}
