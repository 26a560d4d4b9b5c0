package testutils

import (
	"bytes"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FocusPoints is a spread of focus points over both halves of the pitch.
var FocusPoints = []geom.Vector2D{
	geom.V(0, 0),
	geom.V(10, -5),
	geom.V(-30.5, 20.25),
	geom.V(45, 30),
	geom.V(-52.5, -34),
	geom.V(3.3, 0.7),
	geom.V(25, 12),
}

// TrainingFoci is the focus grid used by Corpus callers.
var TrainingFoci = []geom.Vector2D{
	geom.V(-40, -20), geom.V(-40, 0), geom.V(-40, 20),
	geom.V(0, -20), geom.V(0, 0), geom.V(0, 20),
	geom.V(40, -20), geom.V(40, 0), geom.V(40, 20),
}

// NewDefault creates a formation of the named method from the default
// registry, populated with the default roles. It fails the test immediately
// on error.
func NewDefault(t *testing.T, method string, opts ...formation.Option) *formation.Formation {
	t.Helper()

	f, err := formation.Create(method, opts...)
	require.NoError(t, err, "Failed to create %s formation", method)
	require.NoError(t, f.CreateDefaultData(), "Failed to create default data")
	return f
}

// Corpus builds a sample set from the positions fn returns for each focus.
func Corpus(t *testing.T, foci []geom.Vector2D, fn func(focus geom.Vector2D) [domain.MaxPlayer]geom.Vector2D) *samples.DataSet {
	t.Helper()

	ds := samples.New()
	for _, focus := range foci {
		require.NoError(t, ds.Add(samples.Sample{Focus: focus, Players: fn(focus)}))
	}
	return ds
}

// CorpusFrom builds a sample set from the positions f produces.
func CorpusFrom(t *testing.T, f *formation.Formation, foci []geom.Vector2D) *samples.DataSet {
	t.Helper()

	return Corpus(t, foci, func(focus geom.Vector2D) [domain.MaxPlayer]geom.Vector2D {
		var out [domain.MaxPlayer]geom.Vector2D
		copy(out[:], f.Positions(focus, nil))
		return out
	})
}

// RoundTrip prints f, reads the document back through the default registry
// and checks that the copy answers every query exactly as f does.
func RoundTrip(t *testing.T, f *formation.Formation) *formation.Formation {
	t.Helper()

	doc, err := f.Encode()
	require.NoError(t, err)

	g, err := formation.Decode(bytes.NewReader(doc))
	require.NoError(t, err, "Failed to decode document:\n%s", doc)

	assert.Equal(t, f.MethodName(), g.MethodName())
	assert.Equal(t, f.Roles(), g.Roles())
	for unum := 1; unum <= domain.MaxPlayer; unum++ {
		for _, focus := range FocusPoints {
			assert.Equal(t, f.Position(unum, focus), g.Position(unum, focus), "unum %d focus %v", unum, focus)
		}
	}

	again, err := g.Encode()
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(again))
	return g
}

// RunModelContract checks the behaviour every registered model shares with
// the formation core: registration, default data, symmetry, training and
// document round trips.
func RunModelContract(t *testing.T, method string) {
	t.Run("Registered", func(t *testing.T) {
		assert.Contains(t, formation.Registered(), method)

		f, err := formation.Create(method)
		require.NoError(t, err)
		assert.Equal(t, method, f.MethodName())
	})

	t.Run("Default Data", func(t *testing.T) {
		f := NewDefault(t, method)
		for _, d := range domain.DefaultRoles {
			assert.Equal(t, d.Name, f.RoleName(d.Unum))
			assert.Equal(t, d.Code, f.SymmetryCode(d.Unum))
			assert.InDelta(t, d.Home.X, f.Position(d.Unum, geom.Vector2D{}).X, 1e-9, "unum %d", d.Unum)
			assert.InDelta(t, d.Home.Y, f.Position(d.Unum, geom.Vector2D{}).Y, 1e-9, "unum %d", d.Unum)
		}
	})

	t.Run("Mirror Invariant", func(t *testing.T) {
		f := NewDefault(t, method)
		f.SetSamples(CorpusFrom(t, skewed(t, method), TrainingFoci))
		require.NoError(t, f.Train())

		for _, d := range domain.DefaultRoles {
			if d.Code <= 0 {
				continue
			}
			for _, focus := range FocusPoints {
				want := f.Position(d.Code, focus.ReverseY()).ReverseY()
				assert.Equal(t, want, f.Position(d.Unum, focus), "unum %d focus %v", d.Unum, focus)
			}
		}
	})

	t.Run("Center Symmetry", func(t *testing.T) {
		f := NewDefault(t, method)
		f.SetSamples(CorpusFrom(t, skewed(t, method), TrainingFoci))
		require.NoError(t, f.Train())

		for _, focus := range FocusPoints {
			if focus.Y == 0 {
				continue
			}
			assert.Equal(t, f.Position(11, focus.ReverseY()).ReverseY(), f.Position(11, focus), "focus %v", focus)
		}
	})

	t.Run("Empty Corpus", func(t *testing.T) {
		f := NewDefault(t, method)
		focus := geom.V(12.5, -7)
		before := f.Positions(focus, nil)

		require.NoError(t, f.Train())
		f.SetSamples(samples.New())
		require.NoError(t, f.Train())
		assert.Equal(t, before, f.Positions(focus, nil))
	})

	t.Run("Round Trip", func(t *testing.T) {
		f := NewDefault(t, method)
		RoundTrip(t, f)

		f.SetSamples(CorpusFrom(t, skewed(t, method), TrainingFoci))
		require.NoError(t, f.Train())
		g := RoundTrip(t, f)
		assert.Equal(t, f.Samples().Len(), g.Samples().Len())
	})

	t.Run("Header Mismatch", func(t *testing.T) {
		f := NewDefault(t, method)
		doc, err := f.Encode()
		require.NoError(t, err)

		other := "Mismatch"
		if method == other {
			other = "Other"
		}
		doc = bytes.Replace(doc, []byte(method+" "), []byte(other+" "), 1)
		assert.ErrorIs(t, f.Read(bytes.NewReader(doc)), domain.ErrFormat)
	})
}

// skewed returns a default formation whose positions follow the focus point
// in an asymmetric way, as a source of training corpora.
func skewed(t *testing.T, method string) *formation.Formation {
	t.Helper()

	f, err := formation.Create(method)
	require.NoError(t, err)
	ds := Corpus(t, TrainingFoci, func(focus geom.Vector2D) [domain.MaxPlayer]geom.Vector2D {
		var out [domain.MaxPlayer]geom.Vector2D
		for _, d := range domain.DefaultRoles {
			out[d.Unum-1] = geom.V(d.Home.X+0.4*focus.X, d.Home.Y+0.2*focus.Y+0.05*focus.X)
		}
		return out
	})
	require.NoError(t, f.CreateDefaultData())
	f.SetSamples(ds)
	require.NoError(t, f.Train())
	return f
}
