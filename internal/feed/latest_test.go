package feed

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestKeepsNewest(t *testing.T) {
	l := NewLatest[int]()
	_, ok := l.Load()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		l.Publish(i)
	}
	assert.Equal(t, 5, <-l.C())

	select {
	case v := <-l.C():
		t.Fatalf("unexpected stale value %d", v)
	default:
	}

	v, ok := l.Load()
	require.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestLatestConcurrentPublish(t *testing.T) {
	l := NewLatest[int]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Publish(n)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.C(), 1)
}
