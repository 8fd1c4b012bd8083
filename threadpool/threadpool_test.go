package threadpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVisitsEveryTaskExactlyOnce(t *testing.T) {
	p := New(4)
	const n = 97
	var hits [n]int32
	initCalled := false

	ok := p.Run(0, n, func(numThreads int) bool {
		initCalled = true
		assert.Equal(t, 4, numThreads)
		return true
	}, func(task, thread int) {
		atomic.AddInt32(&hits[task], 1)
	}, "test-task")

	require.True(t, ok)
	require.True(t, initCalled)
	for i, h := range hits {
		assert.EqualValues(t, 1, h, "task %d", i)
	}
}

func TestRunAbortsWhenInitFails(t *testing.T) {
	p := New(2)
	bodyCalled := false
	ok := p.Run(0, 10, func(int) bool { return false }, func(task, thread int) {
		bodyCalled = true
	}, "never")
	assert.False(t, ok)
	assert.False(t, bodyCalled)
}

func TestRunEmptyRangeIsNoop(t *testing.T) {
	p := New(2)
	bodyCalled := false
	ok := p.Run(5, 5, func(int) bool { return true }, func(task, thread int) {
		bodyCalled = true
	}, "empty")
	assert.True(t, ok)
	assert.False(t, bodyCalled)
}

func TestNewDefaultsWorkersWhenNonPositive(t *testing.T) {
	p := New(0)
	assert.Greater(t, p.NumWorkers(), 0)
}
