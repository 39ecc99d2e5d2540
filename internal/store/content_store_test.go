package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentStore_PutAndValues(t *testing.T) {
	s := NewContentStore()
	s.Put("https://a.test", "alpha")
	s.Put("https://b.test", "beta")

	assert.Equal(t, []string{"alpha", "beta"}, s.Values())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, s.URLs())
	assert.Equal(t, 2, s.Len())
}

func TestContentStore_PutOverwritesByKey(t *testing.T) {
	s := NewContentStore()
	s.Put("https://a.test", "first")
	s.Put("https://b.test", "beta")
	s.Put("https://a.test", "second")

	assert.Equal(t, []string{"second", "beta"}, s.Values())
	assert.Equal(t, 2, s.Len())
}

func TestContentStore_Clear(t *testing.T) {
	s := NewContentStore()
	s.Put("https://a.test", "alpha")
	s.Clear()

	assert.Empty(t, s.Values())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.URLs())

	s.Put("https://b.test", "beta")
	assert.Equal(t, []string{"https://b.test"}, s.URLs())
}

func TestContentStore_CloneIsIndependent(t *testing.T) {
	s := NewContentStore()
	s.Put("https://a.test", "alpha")
	c := s.Clone()

	s.Clear()
	s.Put("https://b.test", "beta")

	assert.Equal(t, []string{"https://a.test"}, c.URLs())
	assert.Equal(t, []string{"alpha"}, c.Values())
	assert.Equal(t, []string{"https://b.test"}, s.URLs())
}

func TestContentStore_ConcurrentPut(t *testing.T) {
	s := NewContentStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(fmt.Sprintf("https://%d.test", i), "text")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
