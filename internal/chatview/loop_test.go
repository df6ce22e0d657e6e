package chatview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestLoop_RunsInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(8)
	go l.Run(ctx)

	var got []int
	for i := 0; i < 20; i++ {
		i := i
		assert.True(t, l.Do(func() { got = append(got, i) }))
	}
	assert.True(t, l.Call(func() {}))

	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, got)

	cancel()
	<-l.Done()
	assert.False(t, l.Do(func() {}))
	assert.False(t, l.Call(func() {}))
}

func TestLoop_SerializesConcurrentCallers(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewLoop(0)
	go l.Run(ctx)

	c, v := newTestController(nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Call(func() { c.AppendMessage("User", "m", "10:00") })
		}()
	}
	wg.Wait()

	assert.True(t, l.Call(func() {}))
	assert.Len(t, v.entries, 10)
	cancel()
	<-l.Done()
}
