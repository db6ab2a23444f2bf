package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_SingleFlight(t *testing.T) {
	var g Guard
	p, ok := g.TryBegin()
	require.True(t, ok)
	require.NotEmpty(t, p.ID)
	assert.True(t, g.Busy())
	assert.Same(t, p, g.Active())

	second, ok := g.TryBegin()
	assert.False(t, ok)
	assert.Nil(t, second)

	p.End()
	assert.False(t, g.Busy())

	next, ok := g.TryBegin()
	require.True(t, ok)
	assert.NotEqual(t, p.ID, next.ID)
	next.End()
}

func TestPass_EndIsIdempotent(t *testing.T) {
	var g Guard
	p, _ := g.TryBegin()
	p.End()
	q, ok := g.TryBegin()
	require.True(t, ok)

	// a stale second End must not release the newer pass
	p.End()
	assert.True(t, g.Busy())
	q.End()
	assert.False(t, g.Busy())

	var nilPass *Pass
	nilPass.End()
}

func TestGuard_DeferredEndOnEveryPath(t *testing.T) {
	var g Guard
	run := func(fail bool) (err error) {
		p, ok := g.TryBegin()
		if !ok {
			return nil
		}
		defer p.End()
		if fail {
			panic("boom")
		}
		return nil
	}
	assert.NoError(t, run(false))
	assert.Panics(t, func() { _ = run(true) })
	assert.False(t, g.Busy())
}

func TestGuard_Concurrent(t *testing.T) {
	var g Guard
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	start := make(chan struct{})
	held := make(chan *Pass, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if p, ok := g.TryBegin(); ok {
				mu.Lock()
				admitted++
				mu.Unlock()
				held <- p
			}
		}()
	}
	close(start)
	wg.Wait()
	close(held)
	assert.Equal(t, 1, admitted)
	for p := range held {
		p.End()
	}
	assert.False(t, g.Busy())
}
