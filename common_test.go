package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularQueue(t *testing.T) {
	q := NewCircularQueue[int](3)

	assert.True(t, q.IsEmpty())

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	require.True(t, q.IsFull())

	// overflow drops the oldest
	q.Enqueue(4)
	assert.Equal(t, 2, q.Dequeue())
	assert.Equal(t, 3, q.Dequeue())
	assert.Equal(t, 4, q.Dequeue())
	assert.True(t, q.IsEmpty())

	q.Enqueue(5)
	assert.Equal(t, 5, q.At(0))

	q.Clear()
	assert.True(t, q.IsEmpty())
}
