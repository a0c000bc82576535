package rediscache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

func TestKeyLayout(t *testing.T) {
	t.Parallel()
	p := wilderness.Coordinate{X: -12, Y: 340}
	assert.Equal(t, "terrain:v7:-12:340", key(p, 7))

	// Same point, different geometry version: distinct keys, so a swap never
	// serves stale terrain.
	assert.NotEqual(t, key(p, 7), key(p, 8))
}

func TestOpenFromEnvUnset(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	assert.Nil(t, OpenFromEnv())
}
