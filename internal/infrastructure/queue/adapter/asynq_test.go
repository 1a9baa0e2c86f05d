package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueueWeights(t *testing.T) {
	assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1},
		parseQueueWeights("critical=6,default=3,low=1"))

	// missing or invalid weights fall back to 1
	assert.Equal(t, map[string]int{"chat": 1}, parseQueueWeights("chat"))
	assert.Equal(t, map[string]int{"chat": 1}, parseQueueWeights("chat=0"))
	assert.Equal(t, map[string]int{"chat": 1}, parseQueueWeights("chat=abc"))

	assert.Empty(t, parseQueueWeights(""))
	assert.Equal(t, map[string]int{"a": 2}, parseQueueWeights(" a = 2 , "))
}
