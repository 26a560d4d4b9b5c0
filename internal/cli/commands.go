package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aretw0/formation/internal/presentation/graph"
	"github.com/aretw0/formation/internal/presentation/tui"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/samples"
)

// Output formats of Inspect.
const (
	FormatTable    = "table"
	FormatGraph    = "graph"
	FormatDocument = "document"
)

// NewOptions configures NewDocument.
type NewOptions struct {
	Path  string
	Model string
	Empty bool // skip the default 4-3-3 roles
	Force bool // overwrite an existing file
}

// NewDocument writes a fresh formation document.
func NewDocument(env *Env, opts NewOptions) error {
	if opts.Model == "" {
		opts.Model = env.Config.Model
	}
	if opts.Path != "-" && !opts.Force {
		if _, err := os.Stat(opts.Path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", opts.Path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	f, err := env.Registry.Create(opts.Model, env.FormationOptions()...)
	if err != nil {
		return err
	}
	if !opts.Empty {
		if err := f.CreateDefaultData(); err != nil {
			return err
		}
	}
	if err := env.Write(opts.Path, f); err != nil {
		return err
	}
	if opts.Path != "-" {
		tui.Status(env.Out, true, "created %s formation at %s", f.MethodName(), opts.Path)
	}
	return nil
}

// Inspect prints the document at path in the given format.
func Inspect(env *Env, path, format string, highlight []int) error {
	f, err := env.Load(path)
	if err != nil {
		return err
	}
	switch format {
	case "", FormatTable:
		return tui.Write(env.Out, tui.RoleTable(f))
	case FormatGraph:
		_, err := fmt.Fprint(env.Out, graph.GenerateMermaid(f, &graph.GraphOverlay{Highlight: highlight}))
		return err
	case FormatDocument:
		return f.Print(env.Out)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatTable, FormatGraph, FormatDocument)
	}
}

// Position prints the target position of unum for focus, or of every slot
// when unum is 0.
func Position(env *Env, path string, focus geom.Vector2D, unum int) error {
	if !focus.IsValid() {
		return fmt.Errorf("%w: focus must be finite", domain.ErrValidation)
	}
	f, err := env.Load(path)
	if err != nil {
		return err
	}
	if unum == 0 {
		return tui.Write(env.Out, tui.PositionTable(f, focus))
	}
	if !domain.ValidUnum(unum) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidUnum, unum)
	}
	p := f.Position(unum, focus)
	_, err = fmt.Fprintf(env.Out, "%g %g\n", p.X, p.Y)
	return err
}

// TrainOptions configures Train.
type TrainOptions struct {
	Path   string
	CSV    string // replaces the document's samples when set
	Output string // defaults to Path
}

// Train fits the document's model to its samples and writes the result.
func Train(env *Env, opts TrainOptions) error {
	f, err := env.Load(opts.Path)
	if err != nil {
		return err
	}

	if opts.CSV != "" {
		file, err := os.Open(opts.CSV)
		if err != nil {
			return fmt.Errorf("failed to open samples: %w", err)
		}
		ds, err := samplesFromCSV(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", opts.CSV, err)
		}
		f.SetSamples(ds)
		env.Logger.Info("samples imported", "path", opts.CSV, "count", ds.Len())
	}

	if err := f.Train(); err != nil {
		return err
	}

	out := opts.Output
	if out == "" {
		out = opts.Path
	}
	if err := env.Write(out, f); err != nil {
		return err
	}
	if out != "-" {
		tui.Status(env.Out, true, "trained %s formation on %d samples", f.MethodName(), f.Samples().Len())
	}
	return nil
}

func samplesFromCSV(r io.Reader) (*samples.DataSet, error) {
	return samples.ReadCSV(r)
}

// Validate checks that the document at path decodes and that printing it
// back is stable.
func Validate(env *Env, path string) error {
	f, err := env.Load(path)
	if err != nil {
		tui.Status(env.Out, false, "%v", err)
		return err
	}

	first, err := f.Encode()
	if err != nil {
		return err
	}
	again, err := env.Registry.Decode(bytes.NewReader(first))
	if err != nil {
		return fmt.Errorf("printed document does not decode: %w", err)
	}
	second, err := again.Encode()
	if err != nil {
		return err
	}
	if !bytes.Equal(first, second) {
		err := errors.New("printed document is not stable across a round trip")
		tui.Status(env.Out, false, "%v", err)
		return err
	}

	tui.Status(env.Out, true, "%s is a valid %s formation (version %d, %d samples)",
		path, f.MethodName(), f.Version(), f.Samples().Len())
	return nil
}
