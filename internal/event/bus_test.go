package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishOrder(t *testing.T) {
	var b Bus[int]
	var got []string

	b.Subscribe(func(v int) { got = append(got, "first") })
	b.Subscribe(func(v int) { got = append(got, "second") })

	b.Publish(1)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestPublishOncePerCall(t *testing.T) {
	var b Bus[string]
	calls := 0
	b.Subscribe(func(string) { calls++ })

	b.Publish("a")
	b.Publish("b")
	assert.Equal(t, 2, calls)
}

func TestCancel(t *testing.T) {
	var b Bus[int]
	calls := 0
	sub := b.Subscribe(func(int) { calls++ })

	sub.Cancel()
	sub.Cancel()
	b.Publish(1)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, b.Len())
}

func TestCancelDuringPublish(t *testing.T) {
	var b Bus[int]
	var second Subscription
	calls := 0

	b.Subscribe(func(int) { second.Cancel() })
	second = b.Subscribe(func(int) { calls++ })

	// The snapshot taken at publish time still includes the second handler.
	b.Publish(1)
	assert.Equal(t, 1, calls)

	b.Publish(2)
	assert.Equal(t, 1, calls)
}
