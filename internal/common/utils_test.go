package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("Patchy light rain with thunder", "snow", "thunder"))
	assert.True(t, HasAny("Heavy SNOW", "snow"))
	assert.False(t, HasAny("Sunny", "rain", "cloud"))
	assert.False(t, HasAny("Sunny", ""))
	assert.False(t, HasAny("Sunny"))
}
