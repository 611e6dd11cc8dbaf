package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()

	const workers = 32
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("employee:1")
			defer km.Unlock("employee:1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := New()

	km.Lock("service:1")
	// Другой ключ не должен блокироваться
	done := make(chan struct{})
	go func() {
		km.Lock("service:2")
		km.Unlock("service:2")
		close(done)
	}()
	<-done
	km.Unlock("service:1")
}

func TestKeyMutex_CleansUpEntries(t *testing.T) {
	km := New()

	km.Lock("a")
	km.Unlock("a")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
