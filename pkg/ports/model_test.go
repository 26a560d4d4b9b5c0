package ports

import (
	"testing"

	"github.com/aretw0/formation/pkg/geom"
	"github.com/stretchr/testify/assert"
)

func TestTrainingSet_For(t *testing.T) {
	set := TrainingSet{Observations: map[int][]Observation{
		2: {{Focus: geom.V(1, 1), Position: geom.V(-20, -8)}},
	}}

	assert.Len(t, set.For(2), 1)
	assert.Empty(t, set.For(3))
}
