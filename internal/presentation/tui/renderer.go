package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RoleTable renders the role/symmetry table as markdown.
func RoleTable(f *formation.Formation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (version %d)\n\n", f.MethodName(), f.Version())
	b.WriteString("| Unum | Role | Type | Mirrors |\n")
	b.WriteString("|---:|---|---|---:|\n")

	roles := f.Roles()
	roles.Each(func(unum int, r domain.Role) {
		name := r.Name
		if name == "" {
			name = domain.UnassignedRoleName
		}
		mirror := ""
		if r.Type.IsSymmetry() {
			mirror = fmt.Sprint(r.Type.Ref())
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", unum, name, r.Type.Kind(), mirror)
	})

	if ds := f.Samples(); ds != nil {
		fmt.Fprintf(&b, "\n%d training samples.\n", ds.Len())
	}
	return b.String()
}

// PositionTable renders every slot's target position for focus as markdown.
func PositionTable(f *formation.Formation, focus geom.Vector2D) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Positions for focus %s\n\n", focus)
	b.WriteString("| Unum | Role | X | Y |\n")
	b.WriteString("|---:|---|---:|---:|\n")
	for i, p := range f.Positions(focus, nil) {
		unum := i + 1
		name := f.RoleName(unum)
		if name == "" {
			name = domain.UnassignedRoleName
		}
		fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f |\n", unum, name, p.X, p.Y)
	}
	return b.String()
}

// Write renders markdown to w through glamour when w is a terminal and
// writes it as plain text otherwise.
func Write(w io.Writer, markdown string) error {
	if IsTerminal(w) {
		out, err := NewRenderer()(markdown)
		if err == nil {
			markdown = out
		}
	}
	_, err := io.WriteString(w, markdown)
	return err
}
