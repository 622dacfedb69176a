package routecache

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabledReflectsEnvVar(t *testing.T) {
	old := os.Getenv("TC_CACHE_ADDR")
	defer os.Setenv("TC_CACHE_ADDR", old)

	os.Unsetenv("TC_CACHE_ADDR")
	assert.False(t, Enabled())

	os.Setenv("TC_CACHE_ADDR", "localhost:6379")
	assert.True(t, Enabled())
}

func TestRouteKeyIsDeterministicAndDirectional(t *testing.T) {
	assert.Equal(t, routeKey("A", "B"), routeKey("A", "B"))
	assert.NotEqual(t, routeKey("A", "B"), routeKey("B", "A"))
}
