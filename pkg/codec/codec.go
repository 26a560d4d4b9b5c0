// Package codec implements the line-oriented text encoding shared by every
// section of a formation document.
//
// A document is a sequence of lines. Blank lines and lines whose first
// non-space character is CommentMarker are skipped on read. Every other line
// is split into whitespace-separated fields.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/formation/pkg/domain"
)

// CommentMarker starts a comment line.
const CommentMarker = "#"

// Line is one data line of a document.
type Line struct {
	Num    int // 1-based line number in the source
	Fields []string
}

// Is reports whether the line consists of exactly the given fields.
func (l Line) Is(fields ...string) bool {
	if len(l.Fields) != len(fields) {
		return false
	}
	for i, f := range fields {
		if l.Fields[i] != f {
			return false
		}
	}
	return true
}

// HasPrefix reports whether the line starts with the given fields.
func (l Line) HasPrefix(fields ...string) bool {
	if len(l.Fields) < len(fields) {
		return false
	}
	for i, f := range fields {
		if l.Fields[i] != f {
			return false
		}
	}
	return true
}

// Int parses field i as an integer.
func (l Line) Int(i int) (int, error) {
	if i >= len(l.Fields) {
		return 0, domain.NewFormatError(l.Num, "missing field %d", i+1)
	}
	v, err := strconv.Atoi(l.Fields[i])
	if err != nil {
		return 0, domain.NewFormatError(l.Num, "field %d: %q is not an integer", i+1, l.Fields[i])
	}
	return v, nil
}

// Float parses field i as a float.
func (l Line) Float(i int) (float64, error) {
	if i >= len(l.Fields) {
		return 0, domain.NewFormatError(l.Num, "missing field %d", i+1)
	}
	v, err := strconv.ParseFloat(l.Fields[i], 64)
	if err != nil {
		return 0, domain.NewFormatError(l.Num, "field %d: %q is not a number", i+1, l.Fields[i])
	}
	return v, nil
}

// Floats parses n consecutive float fields starting at field i.
func (l Line) Floats(i, n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range n {
		v, err := l.Float(i + k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Reader reads data lines, skipping comments and blank lines.
// It supports one line of lookahead so a caller can inspect a header
// without consuming it.
type Reader struct {
	sc      *bufio.Scanner
	num     int
	pending *Line
	err     error
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Reader{sc: sc}
}

// Next returns the next data line, or io.EOF at the end of input.
func (r *Reader) Next() (Line, error) {
	if r.pending != nil {
		l := *r.pending
		r.pending = nil
		return l, nil
	}
	return r.scan()
}

// Peek returns the next data line without consuming it.
func (r *Reader) Peek() (Line, error) {
	if r.pending != nil {
		return *r.pending, nil
	}
	l, err := r.scan()
	if err != nil {
		return Line{}, err
	}
	r.pending = &l
	return l, nil
}

// Expect consumes the next line and checks that it is exactly fields.
func (r *Reader) Expect(fields ...string) (Line, error) {
	l, err := r.Next()
	if err != nil {
		return Line{}, Unexpected(err, strings.Join(fields, " "))
	}
	if !l.Is(fields...) {
		return l, domain.NewFormatError(l.Num, "expected %q, got %q", strings.Join(fields, " "), strings.Join(l.Fields, " "))
	}
	return l, nil
}

// Row consumes a "<unum> <v1> ... <vn>" line and returns the n values.
// The leading unum must equal unum.
func (r *Reader) Row(unum, n int) ([]float64, error) {
	l, err := r.Next()
	if err != nil {
		return nil, Unexpected(err, fmt.Sprintf("row for unum %d", unum))
	}
	if len(l.Fields) != n+1 {
		return nil, domain.NewFormatError(l.Num, "expected %d fields, got %d", n+1, len(l.Fields))
	}
	got, err := l.Int(0)
	if err != nil {
		return nil, err
	}
	if got != unum {
		return nil, domain.NewFormatError(l.Num, "expected row for unum %d, got %d", unum, got)
	}
	return l.Floats(1, n)
}

// LineNum returns the number of the last line scanned.
func (r *Reader) LineNum() int {
	return r.num
}

func (r *Reader) scan() (Line, error) {
	if r.err != nil {
		return Line{}, r.err
	}
	for r.sc.Scan() {
		r.num++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, CommentMarker) {
			continue
		}
		return Line{Num: r.num, Fields: strings.Fields(text)}, nil
	}
	if err := r.sc.Err(); err != nil {
		r.err = fmt.Errorf("failed to read document: %w", err)
	} else {
		r.err = io.EOF
	}
	return Line{}, r.err
}

// Unexpected converts a premature io.EOF into a FormatError naming what was
// expected. Other errors are returned unchanged.
func Unexpected(err error, want string) error {
	if errors.Is(err, io.EOF) {
		return domain.NewFormatError(0, "unexpected end of document, expected %s", want)
	}
	return err
}

// Writer writes document lines, remembering the first error.
type Writer struct {
	w   *bufio.Writer
	err error
}

// NewWriter wraps w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Line writes the fields separated by single spaces. Floats are written in
// the shortest form that parses back to the same value.
func (w *Writer) Line(fields ...any) {
	if w.err != nil {
		return
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = FormatField(f)
	}
	_, w.err = w.w.WriteString(strings.Join(parts, " ") + "\n")
}

// Comment writes a comment line.
func (w *Writer) Comment(msg string) {
	if w.err != nil {
		return
	}
	for _, l := range strings.Split(msg, "\n") {
		if _, w.err = w.w.WriteString(CommentMarker + " " + l + "\n"); w.err != nil {
			return
		}
	}
}

// Flush flushes buffered output and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.err
}

// FormatField renders a single field value.
func FormatField(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
