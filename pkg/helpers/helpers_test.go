package helpers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtrAndSafeValue(t *testing.T) {
	value := Ptr("hello")
	assert.Equal(t, "hello", SafeValue(value))

	var nilPtr *int
	assert.Equal(t, 0, SafeValue(nilPtr))
}

func TestSafeLastN(t *testing.T) {
	slice := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{4, 5}, SafeLastN(slice, 2))
	assert.Equal(t, slice, SafeLastN(slice, 10))
	assert.Empty(t, SafeLastN([]int{}, 3))
}

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("user-1")
			defer km.Unlock("user-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("user-1")
	done := make(chan struct{})
	go func() {
		km.Lock("user-2")
		km.Unlock("user-2")
		close(done)
	}()
	<-done
	km.Unlock("user-1")
}
