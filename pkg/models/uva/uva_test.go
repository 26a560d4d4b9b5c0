package uva_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/testutils"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/models/uva"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvA_Contract(t *testing.T) {
	testutils.RunModelContract(t, uva.MethodName)
}

func TestUvA_Attraction(t *testing.T) {
	f := testutils.NewDefault(t, uva.MethodName)

	got := f.Position(9, geom.V(20, -10))
	want := geom.V(10+uva.DefaultAttraction.X*20, -22+uva.DefaultAttraction.Y*-10)
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestUvA_CreateRole(t *testing.T) {
	m := uva.New()
	require.NoError(t, m.CreateRole(1, domain.CenterRole(), geom.V(-50, 0)))
	require.NoError(t, m.CreateRole(2, domain.SideRole(), geom.V(-20, -8)))

	assert.True(t, m.(*uva.Model).Param(1).BehindBall)
	assert.False(t, m.(*uva.Model).Param(2).BehindBall)
	assert.Equal(t, uva.DefaultAttraction, m.(*uva.Model).Param(2).Attr)
}

func TestUvA_StaysBehindBall(t *testing.T) {
	const doc = "UvA 1\nBegin Roles\n1 -1 Sweeper\n2 -1 Libero\n3 -1 -\n4 -1 -\n5 -1 -\n6 -1 -\n7 -1 -\n8 -1 -\n9 -1 -\n10 -1 -\n11 -1 -\nEnd Roles\n" +
		"Begin UvA\n1 -20 -5 0 0 -52.5 52.5 1\n2 -20 -5 0 0 -52.5 52.5 0\nEnd UvA\n"

	f, err := formation.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, geom.V(-40, -5), f.Position(1, geom.V(-40, 0)))
	assert.Equal(t, geom.V(-20, -5), f.Position(2, geom.V(-40, 0)))
	assert.Equal(t, geom.V(-20, -5), f.Position(1, geom.V(10, 0)))
}

func TestUvA_ReadConfRejectsInvertedRange(t *testing.T) {
	const doc = "UvA 1\nBegin Roles\n1 -1 Sweeper\n2 -1 -\n3 -1 -\n4 -1 -\n5 -1 -\n6 -1 -\n7 -1 -\n8 -1 -\n9 -1 -\n10 -1 -\n11 -1 -\nEnd Roles\n" +
		"Begin UvA\n1 -20 -5 0 0 10 -10 1\nEnd UvA\n"

	_, err := formation.Decode(strings.NewReader(doc))
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestUvA_ClampsX(t *testing.T) {
	m := uva.New()
	require.NoError(t, m.CreateRole(9, domain.SideRole(), geom.V(40, -22)))

	pos := m.Position(9, geom.V(50, 0))
	assert.Equal(t, domain.PitchHalfLength, pos.X)
}

func TestUvA_TrainRecoversLinearRole(t *testing.T) {
	m := uva.New()
	require.NoError(t, m.CreateRole(7, domain.SideRole(), geom.V(0, -12)))

	var obs []ports.Observation
	for _, focus := range testutils.TrainingFoci {
		obs = append(obs, ports.Observation{
			Focus:    focus,
			Position: geom.V(-5+0.7*focus.X, -10+0.3*focus.Y),
		})
	}
	require.NoError(t, m.Train(ports.TrainingSet{Observations: map[int][]ports.Observation{7: obs}}))

	p := m.(*uva.Model).Param(7)
	assert.InDelta(t, -5, p.Home.X, 1e-9)
	assert.InDelta(t, -10, p.Home.Y, 1e-9)
	assert.InDelta(t, 0.7, p.Attr.X, 1e-9)
	assert.InDelta(t, 0.3, p.Attr.Y, 1e-9)
	assert.InDelta(t, -33, p.MinX, 1e-9)
	assert.InDelta(t, 23, p.MaxX, 1e-9)
}

func TestUvA_TrainKeepsAttractionWithoutSpread(t *testing.T) {
	m := uva.New()
	require.NoError(t, m.CreateRole(6, domain.CenterRole(), geom.V(-15, 0)))

	obs := []ports.Observation{
		{Focus: geom.V(0, -10), Position: geom.V(-12, -3)},
		{Focus: geom.V(20, -10), Position: geom.V(-2, -3)},
	}
	require.NoError(t, m.Train(ports.TrainingSet{Observations: map[int][]ports.Observation{6: obs}}))

	p := m.(*uva.Model).Param(6)
	assert.InDelta(t, 0.5, p.Attr.X, 1e-9)
	assert.InDelta(t, uva.DefaultAttraction.Y, p.Attr.Y, 1e-9)
	assert.InDelta(t, -3-uva.DefaultAttraction.Y*-10, p.Home.Y, 1e-9)
}

func TestUvA_TrainRejectsUnstableFit(t *testing.T) {
	f := testutils.NewDefault(t, uva.MethodName)
	before := f.Positions(geom.V(10, 10), nil)

	f.SetSamples(testutils.Corpus(t, testutils.TrainingFoci, func(focus geom.Vector2D) [domain.MaxPlayer]geom.Vector2D {
		var out [domain.MaxPlayer]geom.Vector2D
		for _, d := range domain.DefaultRoles {
			out[d.Unum-1] = geom.V(d.Home.X+3*focus.X, d.Home.Y)
		}
		return out
	}))

	err := f.Train()
	assert.ErrorIs(t, err, domain.ErrTraining)
	assert.Equal(t, before, f.Positions(geom.V(10, 10), nil))
}
