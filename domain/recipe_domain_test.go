package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitInstructions(t *testing.T) {
	t.Run("splits on CRLF and drops blank lines", func(t *testing.T) {
		steps := SplitInstructions("Preheat oven to 180C.\r\n\r\n  Mix the sauce.  \r\nBake for 30 minutes.")

		assert.Equal(t, []string{
			"Preheat oven to 180C.",
			"Mix the sauce.",
			"Bake for 30 minutes.",
		}, steps)
	})

	t.Run("single line stays one step", func(t *testing.T) {
		steps := SplitInstructions("Boil water.\nAdd pasta.")

		assert.Equal(t, []string{"Boil water.\nAdd pasta."}, steps)
	})

	t.Run("empty instructions yield no steps", func(t *testing.T) {
		assert.Empty(t, SplitInstructions(""))
		assert.Empty(t, SplitInstructions("\r\n\r\n"))
	})
}
