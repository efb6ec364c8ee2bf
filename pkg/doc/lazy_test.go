package doc_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

func TestLazy_ForceRunsRecipeOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	l := doc.NewLazy(func() int {
		calls++
		return 42
	})

	assert.False(t, l.Forced())
	assert.Equal(t, 42, l.Force())
	assert.Equal(t, 42, l.Force())
	assert.True(t, l.Forced())
	assert.Equal(t, 1, calls)
}

func TestLazy_Value(t *testing.T) {
	t.Parallel()

	l := doc.Value("ready")

	assert.True(t, l.Forced())
	assert.Equal(t, "ready", l.Force())
}

func TestLazy_ConcurrentForce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	l := doc.NewLazy(func() doc.Doc {
		calls.Add(1)
		return doc.Text("shared", "")
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, doc.Text("shared", ""), l.Force())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
