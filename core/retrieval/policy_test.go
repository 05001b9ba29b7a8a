package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldAugment(t *testing.T) {
	policy := NewPolicy(nil)

	t.Run("Trigger keyword dominates regardless of length", func(t *testing.T) {
		assert.True(t, policy.ShouldAugment("correlation"))
		assert.True(t, policy.ShouldAugment("trend"))
		assert.True(t, policy.ShouldAugment("Analyze patterns in the sales data"))
	})

	t.Run("Short keyword-free question is not augmented", func(t *testing.T) {
		assert.False(t, policy.ShouldAugment("What's the total sales?"))
	})

	t.Run("Long keyword-free question is augmented", func(t *testing.T) {
		// 7 whitespace tokens, none of them triggers
		assert.True(t, policy.ShouldAugment("list the total sales per region please now"))
	})

	t.Run("Exactly six tokens is not augmented", func(t *testing.T) {
		assert.False(t, policy.ShouldAugment("list the total sales per region"))
	})

	t.Run("Trigger matching is case insensitive", func(t *testing.T) {
		assert.True(t, policy.ShouldAugment("EXPLAIN this"))
	})

	t.Run("Multi-word trigger phrase matches", func(t *testing.T) {
		assert.True(t, policy.ShouldAugment("tell me about the data"))
	})

	t.Run("Empty question is not augmented", func(t *testing.T) {
		assert.False(t, policy.ShouldAugment(""))
	})

	t.Run("Custom vocabulary replaces the default", func(t *testing.T) {
		custom := NewPolicy([]string{"forecast"})

		assert.True(t, custom.ShouldAugment("forecast sales"))
		assert.False(t, custom.ShouldAugment("analyze sales"))
	})
}
