package domain

// MaxPlayer is the number of team slots. Uniform numbers run from 1 to MaxPlayer.
const MaxPlayer = 11

// Pitch dimensions used for default data and input validation.
const (
	PitchHalfLength = 52.5
	PitchHalfWidth  = 34.0
)

// ValidUnum reports whether unum names a team slot.
func ValidUnum(unum int) bool {
	return unum >= 1 && unum <= MaxPlayer
}
