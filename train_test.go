package formation_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainFoci = []geom.Vector2D{geom.V(0, 0), geom.V(20, -10), geom.V(-30, 15), geom.V(40, 25)}

func TestFormation_TrainWithoutCorpusIsNoop(t *testing.T) {
	var events []*domain.TrainEvent
	hooks := domain.LifecycleHooks{OnTrain: func(e *domain.TrainEvent) { events = append(events, e) }}
	f := mustCreate(newRegistry("Static"), "Static", formation.WithLifecycleHooks(hooks))
	require.NoError(t, f.CreateDefaultData())

	focus := geom.V(12.5, -7)
	before := f.Positions(focus, nil)

	require.NoError(t, f.Train())
	assert.Equal(t, before, f.Positions(focus, nil))

	f.SetSamples(sampleCorpus(t, f)) // attached but empty
	require.NoError(t, f.Train())
	assert.Equal(t, before, f.Positions(focus, nil))

	require.Len(t, events, 2)
	assert.True(t, events[0].Skipped)
	assert.Zero(t, events[1].Samples)
}

func TestFormation_TrainFitsCorpus(t *testing.T) {
	target := mustCreate(newRegistry("Static"), "Static")
	require.NoError(t, target.CreateDefaultData())
	corpus := sampleCorpus(t, target, trainFoci...)

	doc, err := target.Encode()
	require.NoError(t, err)
	shifted := strings.Replace(string(doc), "\n2 -20 -8\n", "\n2 -25 -4\n", 1)
	require.NotEqual(t, string(doc), shifted)

	f := mustCreate(newRegistry("Static"), "Static", formation.WithSamples(corpus))
	require.NoError(t, f.Read(strings.NewReader(shifted)))
	require.NotEqual(t, target.Position(3, geom.V(5, 5)), f.Position(3, geom.V(5, 5)))

	require.NoError(t, f.Train())
	assert.Same(t, corpus, f.Samples())
	assert.Equal(t, len(trainFoci), corpus.Len(), "training does not write to the corpus")

	for unum := 1; unum <= domain.MaxPlayer; unum++ {
		for _, focus := range focusPoints {
			want := target.Position(unum, focus)
			got := f.Position(unum, focus)
			assert.InDelta(t, want.X, got.X, 1e-9, "unum %d focus %v", unum, focus)
			assert.InDelta(t, want.Y, got.Y, 1e-9, "unum %d focus %v", unum, focus)
		}
	}
}

func TestFormation_TrainFoldsMirroredObservations(t *testing.T) {
	var seen ports.TrainingSet
	reg := formation.NewRegistry()
	reg.MustRegister("Static", func() ports.Model {
		return &linearModel{name: "Static", homes: map[int]geom.Vector2D{}, seen: &seen}
	})
	f := mustCreate(reg, "Static")
	require.NoError(t, f.CreateDefaultData())
	f.SetSamples(sampleCorpus(t, f, trainFoci...))

	require.NoError(t, f.Train())

	n := len(trainFoci)
	assert.Equal(t, n, seen.SampleCount)
	assert.Len(t, seen.For(2), 2*n, "unum 3 mirrors unum 2")
	assert.Len(t, seen.For(1), n)
	assert.Empty(t, seen.For(3))
	assert.Empty(t, seen.For(8))

	for _, o := range seen.For(1) {
		assert.LessOrEqual(t, o.Focus.Y, 0.0, "center observations are folded onto one half")
	}
	var mirrored int
	for _, o := range seen.For(2) {
		if !containsPoint(trainFoci, o.Focus) {
			assert.True(t, containsPoint(reflectedFoci(), o.Focus), "focus %v", o.Focus)
			mirrored++
		}
	}
	assert.Equal(t, n-1, mirrored, "every off-axis focus of unum 3 is reflected")
}

func TestFormation_TrainSkipsUnassignedRoles(t *testing.T) {
	var seen ports.TrainingSet
	reg := formation.NewRegistry()
	reg.MustRegister("Static", func() ports.Model {
		return &linearModel{name: "Static", homes: map[int]geom.Vector2D{}, seen: &seen}
	})
	f := mustCreate(reg, "Static")
	require.NoError(t, f.UpdateRole(4, -1, "SideBack"))
	f.SetSamples(sampleCorpus(t, f, trainFoci...))

	require.NoError(t, f.Train())
	assert.Len(t, seen.Observations, 1)
	assert.Len(t, seen.For(4), len(trainFoci))
}

func TestFormation_TrainRollsBackOnFailure(t *testing.T) {
	errDiverged := errors.New("diverged")
	reg := formation.NewRegistry()
	reg.MustRegister("Flaky", func() ports.Model {
		return &linearModel{name: "Flaky", homes: map[int]geom.Vector2D{}, trainErr: errDiverged}
	})

	var events []*domain.TrainEvent
	hooks := domain.LifecycleHooks{OnTrain: func(e *domain.TrainEvent) { events = append(events, e) }}
	f := mustCreate(reg, "Flaky", formation.WithLifecycleHooks(hooks))
	require.NoError(t, f.CreateDefaultData())

	// A corpus that disagrees with the current parameters.
	other := mustCreate(newRegistry("Static"), "Static")
	require.NoError(t, other.CreateDefaultData())
	doc, err := other.Encode()
	require.NoError(t, err)
	require.NoError(t, other.Read(strings.NewReader(strings.Replace(string(doc), "\n2 -20 -8\n", "\n2 0 0\n", 1))))
	f.SetSamples(sampleCorpus(t, other, trainFoci...))

	before, err := f.Encode()
	require.NoError(t, err)

	err = f.Train()
	assert.ErrorIs(t, err, domain.ErrTraining)
	assert.ErrorContains(t, err, "diverged")

	after, err := f.Encode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before, after), "parameters are rolled back")

	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, domain.ErrTraining)
	assert.Equal(t, len(trainFoci), events[0].Samples)
}

func reflectedFoci() []geom.Vector2D {
	out := make([]geom.Vector2D, len(trainFoci))
	for i, f := range trainFoci {
		out[i] = f.ReverseY()
	}
	return out
}

func containsPoint(list []geom.Vector2D, p geom.Vector2D) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
