package samples

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
)

const (
	// MaxSize is the maximum number of samples a DataSet accepts.
	MaxSize = 128
	// NearDistance is the minimum distance between two samples' focus points.
	NearDistance = 0.5
)

var (
	ErrTooNear      = errors.New("sample focus point too near an existing sample")
	ErrFull         = errors.New("sample set is full")
	ErrInvalidPoint = errors.New("sample contains an invalid point")
	ErrOutOfRange   = errors.New("sample index out of range")
)

// Sample is one training example.
type Sample struct {
	Focus   geom.Vector2D                   `json:"focus"`
	Players [domain.MaxPlayer]geom.Vector2D `json:"players"`
}

// Player returns the observed position of unum, or the zero vector.
func (s Sample) Player(unum int) geom.Vector2D {
	if !domain.ValidUnum(unum) {
		return geom.Vector2D{}
	}
	return s.Players[unum-1]
}

func (s Sample) validate() error {
	if !s.Focus.IsValid() {
		return ErrInvalidPoint
	}
	for _, p := range s.Players {
		if !p.IsValid() {
			return ErrInvalidPoint
		}
	}
	return nil
}

// DataSet is a concurrency-safe sample corpus.
type DataSet struct {
	mu      sync.RWMutex
	samples []Sample
}

// New creates an empty DataSet.
func New() *DataSet {
	return &DataSet{}
}

// Len returns the number of samples. A nil DataSet is empty.
func (d *DataSet) Len() int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.samples)
}

// Add appends a sample. It rejects samples whose focus point is within
// NearDistance of an existing one.
func (d *DataSet) Add(s Sample) error {
	if err := s.validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.samples) >= MaxSize {
		return ErrFull
	}
	if i := d.nearLocked(s.Focus, -1); i >= 0 {
		return fmt.Errorf("%w: index %d", ErrTooNear, i)
	}
	d.samples = append(d.samples, s)
	return nil
}

// Replace overwrites the sample at index i.
func (d *DataSet) Replace(i int, s Sample) error {
	if err := s.validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= len(d.samples) {
		return ErrOutOfRange
	}
	if j := d.nearLocked(s.Focus, i); j >= 0 {
		return fmt.Errorf("%w: index %d", ErrTooNear, j)
	}
	d.samples[i] = s
	return nil
}

// Remove deletes the sample at index i.
func (d *DataSet) Remove(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i < 0 || i >= len(d.samples) {
		return ErrOutOfRange
	}
	d.samples = slices.Delete(d.samples, i, i+1)
	return nil
}

// At returns the sample at index i.
func (d *DataSet) At(i int) (Sample, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if i < 0 || i >= len(d.samples) {
		return Sample{}, false
	}
	return d.samples[i], true
}

// Samples returns a copy of every sample.
func (d *DataSet) Samples() []Sample {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.samples)
}

// All iterates over a snapshot of the corpus taken when iteration starts.
func (d *DataSet) All() iter.Seq2[int, Sample] {
	snapshot := d.Samples()
	return func(yield func(int, Sample) bool) {
		for i, s := range snapshot {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (d *DataSet) Clone() *DataSet {
	return &DataSet{samples: d.Samples()}
}

// Nearest returns the index of the sample whose focus point is closest to p,
// or -1 when the set is empty.
func (d *DataSet) Nearest(p geom.Vector2D) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	best, bestDist := -1, 0.0
	for i, s := range d.samples {
		if dist := s.Focus.Dist2(p); best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (d *DataSet) nearLocked(p geom.Vector2D, skip int) int {
	for i, s := range d.samples {
		if i == skip {
			continue
		}
		if s.Focus.Dist(p) < NearDistance {
			return i
		}
	}
	return -1
}
