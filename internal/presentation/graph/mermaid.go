package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/pkg/domain"
)

// GraphOverlay marks slots to highlight on the graph.
type GraphOverlay struct {
	Highlight []int
}

// GenerateMermaid produces a Mermaid flowchart of the role/symmetry table.
// Shapes follow the side type:
// - Center: ((Circle))
// - Side: [Rectangle]
// - Symmetry: [/Parallelogram/], with a dotted edge to the role it mirrors
func GenerateMermaid(f *formation.Formation, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	roles := f.Roles()
	roles.Each(func(unum int, r domain.Role) {
		id := nodeID(unum)

		opener, closer := "[", "]"
		switch {
		case r.Type.IsCenter():
			opener, closer = "((", "))"
		case r.Type.IsSymmetry():
			opener, closer = "[/", "/]"
		}

		name := r.Name
		if name == "" {
			name = domain.UnassignedRoleName
		}
		// Escape double quotes in names for Mermaid labels
		name = strings.ReplaceAll(name, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%d %s\"%s\n", id, opener, unum, name, closer))

		if r.Type.IsSymmetry() {
			sb.WriteString(fmt.Sprintf("    %s -. mirrors .-> %s\n", id, nodeID(r.Type.Ref())))
		}
	})

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, unum := range overlay.Highlight {
			if !domain.ValidUnum(unum) || seen[unum] {
				continue
			}
			seen[unum] = true
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", nodeID(unum)))
		}
	}

	return sb.String()
}

func nodeID(unum int) string {
	return fmt.Sprintf("p%d", unum)
}
