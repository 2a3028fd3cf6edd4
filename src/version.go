package dantracker

import (
	"fmt"
	"strconv"
)

// Overridden at build time with
// -ldflags "-X .../src.BUILD=1234 -X .../src.REVISION=abcdef"

var BUILD = "0"
var REVISION = "Unknown"

func version_string() string {
	var build, _ = strconv.Atoi(BUILD)

	return fmt.Sprintf("v0.1.%04d (%s)", build, REVISION)
}
