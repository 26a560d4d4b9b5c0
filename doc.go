/*
Package formation is a positional-formation engine for a team of 11 cooperating agents.

Given a focus point (usually the ball), a Formation yields a target position for
every team slot. The position math is delegated to a pluggable Model chosen by
name; the Formation itself owns the role/symmetry table, the attached sample
corpus and the versioned document format.

# Concept

Each of the 11 slots carries a role name and a side type:

  - Side: an independent role with parameters over the whole field.
  - Center: an independent role on the center line; its model is only consulted
    for focus points on one half of the field and reflected for the other.
  - Symmetry(ref): a role that mirrors the Side role ref across the field's
    longitudinal axis. It has no parameters of its own.

Mirroring is a correctness contract: for a Symmetry(ref) slot u,

	f.Position(u, focus) == f.Position(ref, focus.ReverseY()).ReverseY()

# Documents

A formation document is line oriented text. Lines starting with '#' are comments.

	# my formation
	Static 1
	Begin Roles
	1 0 Goalie
	2 -1 CenterBack
	3 2 CenterBack
	...
	End Roles
	<model block>
	Begin Samples 1 <count>      (optional)
	...
	End Samples

Decode reads only the header to pick the concrete model from the registry, then
loads the full document into a new Formation.

# Usage

	import (
		"github.com/aretw0/formation"
		_ "github.com/aretw0/formation/pkg/models/uva"
	)

	f, err := formation.Create("UvA")
	if err != nil {
		log.Fatal(err)
	}
	f.CreateDefaultData()

	positions := f.Positions(geom.V(10, -5), nil)
*/
package formation
