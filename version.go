package formation

// Version is the release version of the formation module.
var Version = "0.4.0"

// FormatVersion is the highest document format version this package reads,
// and the version it writes.
const FormatVersion = 1
