package samples

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
)

// FormatVersion is the sample section version written by Print.
const FormatVersion = 1

// BeginKeyword opens the samples section: "Begin Samples <version> <count>".
const BeginKeyword = "Begin"

// SectionName names the samples section.
const SectionName = "Samples"

// IsSectionStart reports whether l opens a samples section.
func IsSectionStart(l codec.Line) bool {
	return l.HasPrefix(BeginKeyword, SectionName)
}

// Print writes the samples section:
//
//	Begin Samples <version> <count>
//	Sample <index>
//	Focus <x> <y>
//	<unum> <x> <y>      (11 rows)
//	...
//	End Samples
func (d *DataSet) Print(w *codec.Writer) {
	list := d.Samples()
	w.Line(BeginKeyword, SectionName, FormatVersion, len(list))
	for i, s := range list {
		w.Line("Sample", i)
		w.Line("Focus", s.Focus.X, s.Focus.Y)
		for u, p := range s.Players {
			w.Line(u+1, p.X, p.Y)
		}
	}
	w.Line("End", SectionName)
}

// Read parses a samples section produced by Print into a new DataSet.
func Read(r *codec.Reader) (*DataSet, error) {
	head, err := r.Next()
	if err != nil {
		return nil, codec.Unexpected(err, "Begin Samples")
	}
	if !IsSectionStart(head) || len(head.Fields) != 4 {
		return nil, domain.NewFormatError(head.Num, "expected samples header, got %q", strings.Join(head.Fields, " "))
	}
	version, err := head.Int(2)
	if err != nil {
		return nil, err
	}
	if version < 1 || version > FormatVersion {
		return nil, domain.NewFormatError(head.Num, "unsupported samples version %d", version)
	}
	count, err := head.Int(3)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > MaxSize {
		return nil, domain.NewFormatError(head.Num, "illegal sample count %d", count)
	}

	d := New()
	for i := range count {
		s, err := readSample(r, i)
		if err != nil {
			return nil, err
		}
		if err := d.Add(s); err != nil {
			return nil, domain.NewFormatError(r.LineNum(), "sample %d: %v", i, err)
		}
	}

	if _, err := r.Expect("End", SectionName); err != nil {
		return nil, err
	}
	return d, nil
}

func readSample(r *codec.Reader, index int) (Sample, error) {
	var s Sample

	l, err := r.Expect("Sample", strconv.Itoa(index))
	if err != nil {
		return s, err
	}

	if l, err = r.Next(); err != nil {
		return s, codec.Unexpected(err, "Focus")
	}
	if !l.HasPrefix("Focus") || len(l.Fields) != 3 {
		return s, domain.NewFormatError(l.Num, "expected focus line")
	}
	xy, err := l.Floats(1, 2)
	if err != nil {
		return s, err
	}
	s.Focus = geom.V(xy[0], xy[1])

	for unum := 1; unum <= domain.MaxPlayer; unum++ {
		if l, err = r.Next(); err != nil {
			return s, codec.Unexpected(err, "player row")
		}
		if len(l.Fields) != 3 {
			return s, domain.NewFormatError(l.Num, "expected 3 fields in player row, got %d", len(l.Fields))
		}
		n, err := l.Int(0)
		if err != nil {
			return s, err
		}
		if n != unum {
			return s, domain.NewFormatError(l.Num, "expected player %d, got %d", unum, n)
		}
		xy, err := l.Floats(1, 2)
		if err != nil {
			return s, err
		}
		s.Players[unum-1] = geom.V(xy[0], xy[1])
	}
	return s, nil
}

// csvColumns is focus x/y followed by x/y for each player.
const csvColumns = 2 + 2*domain.MaxPlayer

// ReadCSV imports a corpus recorded as CSV rows of
// focus_x,focus_y,p1_x,p1_y,...,p11_x,p11_y. A header row is skipped when its
// first cell is not numeric.
func ReadCSV(r io.Reader) (*DataSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = csvColumns
	cr.Comment = '#'

	d := New()
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, domain.NewFormatError(row, "csv: %v", err)
		}
		if row == 1 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err != nil {
				continue
			}
		}

		vals := make([]float64, csvColumns)
		for i, cell := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, domain.NewFormatError(row, "csv column %d: %q is not a number", i+1, cell)
			}
			vals[i] = v
		}

		s := Sample{Focus: geom.V(vals[0], vals[1])}
		for u := range domain.MaxPlayer {
			s.Players[u] = geom.V(vals[2+2*u], vals[3+2*u])
		}
		if err := d.Add(s); err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
	}
}
