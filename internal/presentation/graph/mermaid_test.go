package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/presentation/graph"
	_ "github.com/aretw0/formation/pkg/models/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	f, err := formation.Create("Static")
	require.NoError(t, err)
	require.NoError(t, f.CreateDefaultData())

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				"graph LR\n",
				"p1((\"1 Goalie\"))",
				"p2[\"2 CenterBack\"]",
				"p3[/\"3 CenterBack\"/]",
			},
		},
		{
			name: "Mirror Edges",
			contains: []string{
				"p3 -. mirrors .-> p2",
				"p10 -. mirrors .-> p9",
			},
			excludes: []string{"p2 -. mirrors"},
		},
		{
			name:    "Overlay",
			overlay: &graph.GraphOverlay{Highlight: []int{4, 4, 12}},
			contains: []string{
				"classDef focus",
				"class p4 focus;",
			},
			excludes: []string{"class p12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(f, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}

	got := graph.GenerateMermaid(f, &graph.GraphOverlay{Highlight: []int{4, 4}})
	assert.Equal(t, 1, strings.Count(got, "class p4 focus;"))
}

func TestGenerateMermaid_Fresh(t *testing.T) {
	f, err := formation.Create("Static")
	require.NoError(t, err)

	got := graph.GenerateMermaid(f, nil)
	assert.Contains(t, got, "p11[\"11 -\"]")
	assert.NotContains(t, got, "mirrors")
	assert.NotContains(t, got, "Overlay")
}
