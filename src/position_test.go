package dantracker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* Append a correct NMEA checksum so test sentences stay readable. */

func nmea(body string) string {
	var sum byte
	for i := 1; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("%s*%02X", body, sum)
}

// TestParseGPSString: a GGA/RMC pair assembles one logical fix.
func TestParseGPSString(t *testing.T) {
	var s = test_state()

	require.True(t, s.parse_gps_string(nmea("$GPGGA,003518.710,4237.1250,N,07120.8327,W,1,05,5.9,33.5,M,-33.5,M,,0000")))

	var fix = s.mypos()
	assert.Equal(t, 1, fix.qual)
	assert.Equal(t, 5, fix.sats)
	assert.InDelta(t, 42.618750, fix.lat, 1e-5)
	assert.InDelta(t, -71.347212, fix.lon, 1e-5)
	assert.InDelta(t, M_TO_FT(33.5), fix.alt, 1e-6)
	assert.Equal(t, 3518, fix.tstamp)

	// RMC rotates to a fresh slot...
	var before_idx = s.mypos_idx
	require.True(t, s.parse_gps_string(nmea("$GPRMC,003413.710,A,4237.1240,N,07120.8333,W,5.07,291.42,160614,,,A")))
	assert.Equal(t, (before_idx+1)%KEEP_POSITS, s.mypos_idx)

	fix = s.mypos()
	assert.InDelta(t, 5.07, fix.speed, 1e-9)
	assert.InDelta(t, 291.42, fix.course, 1e-9)
	assert.Equal(t, 160614, fix.dstamp)

	// ...and the next GGA contributes to that same fix.
	require.True(t, s.parse_gps_string(nmea("$GPGGA,003518.710,4237.1250,N,07120.8327,W,1,05,5.9,33.5,M,-33.5,M,,0000")))
	fix = s.mypos()
	assert.Equal(t, 1, fix.qual)
	assert.InDelta(t, 5.07, fix.speed, 1e-9, "speed from RMC survives the GGA update")
}

// TestParseGPSStringBadChecksum: corrupt sentences change nothing.
func TestParseGPSStringBadChecksum(t *testing.T) {
	var s = test_state()

	assert.False(t, s.parse_gps_string("$GPGGA,003518.710,4237.1250,N,07120.8327,W,1,05,5.9,33.5,M,-33.5,M,,0000*00"))
	assert.Equal(t, 0, s.mypos().qual)
	assert.Equal(t, 0, s.mypos_idx)
}

// TestParseGPSStringMissingChecksum is also a drop.
func TestParseGPSStringMissingChecksum(t *testing.T) {
	var s = test_state()

	assert.False(t, s.parse_gps_string("$GPGGA,003518.710,4237.1250,N,07120.8327,W,1,05,5.9,33.5,M,-33.5,M,,0000"))
}

// TestParseGPSStringUnknownSentence: quietly ignored.
func TestParseGPSStringUnknownSentence(t *testing.T) {
	var s = test_state()

	assert.False(t, s.parse_gps_string(nmea("$GPGSV,3,1,11,10,63,137,17,07,61,098,15")))
	assert.Equal(t, 0, s.mypos_idx, "no rotation for unknown sentences")
}

// TestParseGGANoFix: quality zero is recorded but position is not trusted.
func TestParseGGANoFix(t *testing.T) {
	var fix posit

	require.True(t, parse_gga(&fix, "$GPGGA,001429.00,,,,,0,00,99.99,,,,,,"))
	assert.Equal(t, 0, fix.qual)
	assert.Equal(t, 0.0, fix.lat)
}

// TestParseRMCVoid: a void sentence keeps its timestamps but reports
// no movement data.
func TestParseRMCVoid(t *testing.T) {
	var fix posit

	require.False(t, parse_rmc(&fix, "$GPRMC,001431.00,V,,,,,,,121015,,,N"))
	assert.Equal(t, 1431, fix.tstamp)
	assert.Equal(t, 121015, fix.dstamp)
	assert.Equal(t, 0.0, fix.speed)
}

// TestRemoveChecksum both ways.
func TestRemoveChecksum(t *testing.T) {
	var good = nmea("$GPGGA,1,2,3")

	var msg, err = remove_checksum(good, true)
	require.NoError(t, err)
	assert.Equal(t, "$GPGGA,1,2,3", msg)

	_, err = remove_checksum("$GPGGA,1,2,3*FF", true)
	assert.Error(t, err)

	_, err = remove_checksum("$GPGGA,1,2,3", true)
	assert.Error(t, err)
}
