package static_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/testutils"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/models/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Contract(t *testing.T) {
	testutils.RunModelContract(t, static.MethodName)
}

func TestStatic_IgnoresFocus(t *testing.T) {
	f := testutils.NewDefault(t, static.MethodName)

	for _, focus := range testutils.FocusPoints {
		assert.Equal(t, geom.V(-20, -8), f.Position(2, focus))
	}
}

func TestStatic_TrainsMean(t *testing.T) {
	f := testutils.NewDefault(t, static.MethodName)
	foci := []geom.Vector2D{geom.V(-10, -10), geom.V(10, -10)}
	f.SetSamples(testutils.Corpus(t, foci, func(focus geom.Vector2D) [domain.MaxPlayer]geom.Vector2D {
		var out [domain.MaxPlayer]geom.Vector2D
		out[1] = geom.V(focus.X, -5)  // unum 2
		out[2] = geom.V(focus.X, 15)  // unum 3, mirrors 2
		out[0] = geom.V(-50, focus.Y) // unum 1, center
		return out
	}))

	require.NoError(t, f.Train())

	assert.Equal(t, geom.V(0, -10), f.Position(2, geom.Vector2D{}), "mean of (x,-5) and reflected (x,-15)")
	assert.Equal(t, geom.V(0, 10), f.Position(3, geom.Vector2D{}))
	assert.Equal(t, geom.V(-50, -10), f.Position(1, geom.V(0, -1)))
}

func TestStatic_ReadConfErrors(t *testing.T) {
	const roles = "Static 1\nBegin Roles\n1 0 Goalie\n2 -1 -\n3 -1 -\n4 -1 -\n5 -1 -\n6 -1 -\n7 -1 -\n8 -1 -\n9 -1 -\n10 -1 -\n11 -1 -\nEnd Roles\n"

	tests := map[string]string{
		"missing row": "Begin Static\nEnd Static\n",
		"wrong unum":  "Begin Static\n2 0 0\nEnd Static\n",
		"bad number":  "Begin Static\n1 x 0\nEnd Static\n",
		"extra row":   "Begin Static\n1 -50 0\n2 0 0\nEnd Static\n",
		"wrong block": "Begin UvA\n1 -50 0\nEnd UvA\n",
		"missing end": "Begin Static\n1 -50 0\n",
	}
	for name, conf := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := formation.Decode(strings.NewReader(roles + conf))
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}

	f, err := formation.Decode(strings.NewReader(roles + "Begin Static\n1 -50 0\nEnd Static\n"))
	require.NoError(t, err)
	assert.Equal(t, geom.V(-50, 0), f.Position(1, geom.V(30, -30)))
}
