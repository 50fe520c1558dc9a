package distance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDistanceProvider(t *testing.T) {
	p := NewStaticDistanceProvider([]StaticPair{
		{From: "A", To: "B", Meters: 50000, Seconds: 1800},
	})

	got, err := p.GetDistance(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, 50000, got.DistanceMeters)

	_, err = p.GetDistance(context.Background(), "B", "A")
	assert.True(t, errors.Is(err, ErrNoRoute))

	boom := errors.New("boom")
	p.Fail("A", "B", boom)
	_, err = p.GetDistance(context.Background(), "A", "B")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"A|B", "B|A", "A|B"}, p.Calls())
}

func TestStaticDistanceProvider_CanceledContext(t *testing.T) {
	p := NewStaticDistanceProvider(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.GetDistance(ctx, "A", "B")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.Calls())
}
