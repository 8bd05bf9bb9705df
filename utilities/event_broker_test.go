package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventPublisher(t *testing.T) {
	p := NewPublisher[string]()

	var first, second []string
	cancelFirst := p.Register(SubscriberFunc[string](func(e string) { first = append(first, e) }))
	p.Register(SubscriberFunc[string](func(e string) { second = append(second, e) }))
	assert.Equal(t, 2, p.Len())

	p.SendEvent("a")
	cancelFirst()
	p.SendEvent("b")

	assert.Equal(t, []string{"a"}, first)
	assert.Equal(t, []string{"a", "b"}, second)
	assert.Equal(t, 1, p.Len())

	// cancelling twice is harmless
	cancelFirst()
	assert.Equal(t, 1, p.Len())
}
