package growth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageForBoundaries(t *testing.T) {
	tests := []struct {
		vocabulary int
		want       Stage
	}{
		{0, StageInfant},
		{9, StageInfant},
		{10, StageToddler},
		{24, StageToddler},
		{25, StageChild},
		{49, StageChild},
		{50, StageAdolescent},
		{99, StageAdolescent},
		{100, StageAdult},
		{5000, StageAdult},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, StageFor(tc.vocabulary), "vocabulary %d", tc.vocabulary)
	}
}

func TestStageForNonDecreasing(t *testing.T) {
	previous := StageFor(0)
	for v := 1; v <= 200; v++ {
		current := StageFor(v)
		assert.GreaterOrEqual(t, rank(current), rank(previous), "vocabulary %d", v)
		previous = current
	}
}

func TestNextStageThreshold(t *testing.T) {
	assert.Equal(t, 10, NextStageThreshold(0))
	assert.Equal(t, 10, NextStageThreshold(9))
	assert.Equal(t, 25, NextStageThreshold(10))
	assert.Equal(t, 50, NextStageThreshold(30))
	assert.Equal(t, 100, NextStageThreshold(60))
	assert.Equal(t, 100, NextStageThreshold(500))
}

func TestIsEarlyStage(t *testing.T) {
	assert.True(t, IsEarlyStage(StageInfant))
	assert.True(t, IsEarlyStage(StageToddler))
	assert.False(t, IsEarlyStage(StageChild))
	assert.False(t, IsEarlyStage(StageAdult))
}
