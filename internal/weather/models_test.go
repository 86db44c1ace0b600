package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"
)

func TestLocationName(t *testing.T) {
	assert.Equal(t, "London", Location{City: "London", Country: "GB"}.Name())
	assert.Equal(t, "51.51,-0.13", Location{Lat: ptr.To(51.51), Lon: ptr.To(-0.13)}.Name())
	assert.Equal(t, "London:GB", Location{City: "London", Country: "GB"}.Key())
	assert.False(t, Location{Lat: ptr.To(1.0)}.HasCoordinates())
}

func TestConditionLocalTime(t *testing.T) {
	c := ConditionRecord{TimezoneOffset: 3600}
	assert.Equal(t, "06:00", c.LocalTime(5*3600).Format("15:04"))
}
