package latency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoneDoesNotWait(t *testing.T) {
	start := time.Now()
	require.NoError(t, Wait(context.Background(), None(), OpUploadMedia))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestSimulatedUsesDefaults(t *testing.T) {
	p := Simulated()
	assert.Equal(t, 1500*time.Millisecond, p.Delay(OpUploadMedia))
	assert.Equal(t, 800*time.Millisecond, p.Delay(OpSignIn))
	assert.Equal(t, 300*time.Millisecond, p.Delay(OpListSignatures))
}

func TestFixedUnknownOp(t *testing.T) {
	p := Fixed(map[Op]time.Duration{OpSignIn: time.Second})
	assert.Zero(t, p.Delay(OpPostMessage))
}

func TestRandomStaysInRange(t *testing.T) {
	p := Random(300*time.Millisecond, 1500*time.Millisecond)
	for range 100 {
		d := p.Delay(OpListMedia)
		assert.GreaterOrEqual(t, d, 300*time.Millisecond)
		assert.Less(t, d, 1500*time.Millisecond)
	}
}

func TestRandomInvertedRange(t *testing.T) {
	for _, p := range []Policy{
		Random(500*time.Millisecond, 500*time.Millisecond),
		Random(500*time.Millisecond, 100*time.Millisecond),
	} {
		for op := range Defaults {
			assert.Equal(t, 500*time.Millisecond, p.Delay(op), op)
		}
		assert.Equal(t, 500*time.Millisecond, p.Delay(Op("unknown")))
	}
}

func TestWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Fixed(map[Op]time.Duration{OpSignUp: time.Hour})
	err := Wait(ctx, p, OpSignUp)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitElapses(t *testing.T) {
	p := Fixed(map[Op]time.Duration{OpSignOut: 10 * time.Millisecond})
	start := time.Now()
	require.NoError(t, Wait(context.Background(), p, OpSignOut))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestWaitNilPolicy(t *testing.T) {
	require.NoError(t, Wait(context.Background(), nil, OpSignIn))
}
