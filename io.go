package formation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/samples"
)

const (
	rolesBegin = "Begin"
	rolesEnd   = "End"
	rolesName  = "Roles"
)

// Read loads a whole document: header, roles, model block and the optional
// samples section. The document's method name must match MethodName.
//
// Read is transactional: the document is parsed into a fresh instance and
// only committed when every section succeeds, so a failed Read leaves f
// unchanged. When the document has a samples section it replaces the
// attached corpus; otherwise the attached corpus is kept.
func (f *Formation) Read(r io.Reader) error {
	return f.readFrom(codec.NewReader(r))
}

func (f *Formation) readFrom(r *codec.Reader) error {
	tmp := &Formation{
		roles:    domain.NewRoleTable(),
		model:    f.newModel(),
		newModel: f.newModel,
		logger:   f.logger,
	}

	hasSamples, err := tmp.readSections(r)
	if f.hooks.OnRead != nil {
		f.hooks.OnRead(&domain.ReadEvent{
			EventBase: f.base(domain.EventRead),
			Version:   tmp.version,
			Samples:   tmp.samples.Len(),
			Err:       err,
		})
	}
	if err != nil {
		f.logger.Debug("formation read failed", "method", f.MethodName(), "line", r.LineNum(), "err", err)
		return err
	}

	f.version = tmp.version
	f.roles = tmp.roles
	f.model = tmp.model
	if hasSamples {
		f.samples = tmp.samples
	}
	f.logger.Debug("formation read", "method", f.MethodName(), "version", f.version, "samples", f.samples.Len())
	return nil
}

func (f *Formation) readSections(r *codec.Reader) (bool, error) {
	if err := f.readHeader(r); err != nil {
		return false, err
	}
	if err := f.readRoles(r); err != nil {
		return false, err
	}
	if err := f.model.ReadConf(r, &f.roles); err != nil {
		return false, wrapFormat(r, err)
	}
	return f.readSamples(r)
}

// parseHeader validates a "<methodName> <version>" line.
func parseHeader(l codec.Line) (string, int, error) {
	if len(l.Fields) != 2 {
		return "", 0, domain.NewFormatError(l.Num, "expected header \"<method> <version>\", got %q", strings.Join(l.Fields, " "))
	}
	version, err := l.Int(1)
	if err != nil {
		return "", 0, err
	}
	if version < 1 || version > FormatVersion {
		return "", 0, domain.NewFormatError(l.Num, "unsupported format version %d (max %d)", version, FormatVersion)
	}
	return l.Fields[0], version, nil
}

func (f *Formation) readHeader(r *codec.Reader) error {
	l, err := r.Next()
	if err != nil {
		return codec.Unexpected(err, "header")
	}
	name, version, err := parseHeader(l)
	if err != nil {
		return err
	}
	if name != f.MethodName() {
		return domain.NewFormatError(l.Num, "method name %q does not match %q", name, f.MethodName())
	}
	f.version = version
	return nil
}

type roleRow struct {
	line int
	unum int
	code int
	name string
}

// readRoles applies the role rows in two passes, independent roles first, so
// that a mirror row may precede the row of the role it mirrors.
func (f *Formation) readRoles(r *codec.Reader) error {
	if _, err := r.Expect(rolesBegin, rolesName); err != nil {
		return err
	}

	rows := make([]roleRow, 0, domain.MaxPlayer)
	seen := make(map[int]bool, domain.MaxPlayer)
	for range domain.MaxPlayer {
		l, err := r.Next()
		if err != nil {
			return codec.Unexpected(err, "role row")
		}
		if len(l.Fields) != 3 {
			return domain.NewFormatError(l.Num, "expected \"<unum> <symmetry> <name>\", got %q", strings.Join(l.Fields, " "))
		}
		unum, err := l.Int(0)
		if err != nil {
			return err
		}
		code, err := l.Int(1)
		if err != nil {
			return err
		}
		if !domain.ValidUnum(unum) || seen[unum] {
			return domain.NewFormatError(l.Num, "illegal or duplicate unum %d", unum)
		}
		seen[unum] = true
		rows = append(rows, roleRow{line: l.Num, unum: unum, code: code, name: l.Fields[2]})
	}

	for pass := range 2 {
		for _, row := range rows {
			if (row.code > 0) != (pass == 1) {
				continue
			}
			if row.code < 0 && row.name == domain.UnassignedRoleName {
				continue
			}
			if err := f.updateRole(row.unum, row.code, row.name); err != nil {
				return domain.NewFormatError(row.line, "role %d: %v", row.unum, err)
			}
		}
	}

	_, err := r.Expect(rolesEnd, rolesName)
	return err
}

func (f *Formation) readSamples(r *codec.Reader) (bool, error) {
	l, err := r.Peek()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !samples.IsSectionStart(l) {
		return false, domain.NewFormatError(l.Num, "unexpected data %q after model block", strings.Join(l.Fields, " "))
	}

	ds, err := samples.Read(r)
	if err != nil {
		return false, err
	}
	if l, err := r.Peek(); err == nil {
		return false, domain.NewFormatError(l.Num, "unexpected data after samples section")
	} else if !errors.Is(err, io.EOF) {
		return false, err
	}
	f.samples = ds
	return true, nil
}

func wrapFormat(r *codec.Reader, err error) error {
	if errors.Is(err, domain.ErrFormat) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return domain.NewFormatError(r.LineNum(), "model block: %v", err)
}

// Print writes the whole document: header, roles, model block and, when a
// non-empty corpus is attached, the samples section.
func (f *Formation) Print(w io.Writer) error {
	cw := codec.NewWriter(w)
	cw.Line(f.MethodName(), f.version)

	cw.Line(rolesBegin, rolesName)
	f.roles.Each(func(unum int, role domain.Role) {
		name := role.Name
		if name == "" {
			name = domain.UnassignedRoleName
		}
		cw.Line(unum, role.Type.Code(), name)
	})
	cw.Line(rolesEnd, rolesName)

	if err := f.model.WriteConf(cw, &f.roles); err != nil {
		return fmt.Errorf("write %s conf: %w", f.MethodName(), err)
	}
	if f.samples.Len() > 0 {
		f.samples.Print(cw)
	}
	return cw.Flush()
}

// PrintComment writes msg as one or more comment lines.
func (f *Formation) PrintComment(w io.Writer, msg string) error {
	cw := codec.NewWriter(w)
	cw.Comment(msg)
	return cw.Flush()
}

// Encode returns the document produced by Print.
func (f *Formation) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Print(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
