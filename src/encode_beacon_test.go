package dantracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func test_state() *state {
	var s = new_state()

	s.mycall = "N0CAL-7"
	s.conf.icon = "/>"
	s.conf.digi_path = "WIDE1-1"
	s.conf.comments = []string{"hi"}

	s.conf.atrest_rate = 600
	s.conf.sb_low = smart_beacon_point_t{int_sec: 600, speed: 10}
	s.conf.sb_high = smart_beacon_point_t{int_sec: 60, speed: 60}
	s.conf.course_change_min = 30
	s.conf.course_change_slope = 255
	s.conf.after_stop = 180

	return s
}

// TestMakeBeaconStationary checks the exact wire form of a plain
// position beacon while parked.
func TestMakeBeaconStationary(t *testing.T) {
	var s = test_state()

	*s.mypos() = posit{lat: 37.12345, lon: -122.5432, qual: 1, sats: 5}

	var packet = s.make_beacon("")

	assert.Equal(t, "N0CAL-7>APZDMS,WIDE1-1:!3707.41N/12232.59W>hi", packet)
}

// TestMakeBeaconMoving checks the course/speed field appears above 5 knots.
func TestMakeBeaconMoving(t *testing.T) {
	var s = test_state()

	*s.mypos() = posit{lat: 37.12345, lon: -122.5432, speed: 42, course: 217, qual: 1, sats: 5}

	var packet = s.make_beacon("")

	assert.Equal(t, "N0CAL-7>APZDMS,WIDE1-1:!3707.41N/12232.59W>217/042hi", packet)
}

// TestMakeMiceBeacon verifies the destination field byte by byte.
func TestMakeMiceBeacon(t *testing.T) {
	var s = test_state()
	s.conf.digi_path = "WIDE2-1"

	*s.mypos() = posit{lat: 45.0, lon: -120.0, speed: 60, course: 90, qual: 1}

	var packet = s.make_mice_beacon()

	// Latitude digits 4 5 0 0 0 0 with the status, hemisphere and
	// longitude offset bits OR-ed in.
	require.Equal(t, "N0CAL-7>T5PPPP,WIDE2-1:", packet[:23])

	var info = []byte(packet[23:])
	require.Len(t, info, 9)

	assert.EqualValues(t, '`', info[0])
	assert.EqualValues(t, '0', info[1], "longitude degrees: (120-100)+28")
	assert.EqualValues(t, 'X', info[2], "longitude minutes: 0+88")
	assert.EqualValues(t, 28, info[3], "longitude hundredths: 0+28")
	assert.EqualValues(t, 'r', info[4], "speed tens: 60/10+108")
	assert.EqualValues(t, ' ', info[5], "speed units and course hundreds: 32+0+0")
	assert.EqualValues(t, 'v', info[6], "course: 90+28")
	assert.EqualValues(t, '>', info[7], "icon code comes first")
	assert.EqualValues(t, '/', info[8], "icon table comes second")
}

// TestMiceDestinationPrintable is the property that keeps the
// destination usable as an AX.25 address.
func TestMiceDestinationPrintable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s = test_state()

		*s.mypos() = posit{
			lat:    rapid.Float64Range(-89.99, 89.99).Draw(t, "lat"),
			lon:    rapid.Float64Range(-179.99, 179.99).Draw(t, "lon"),
			speed:  rapid.Float64Range(0, 150).Draw(t, "speed"),
			course: rapid.Float64Range(0, 359).Draw(t, "course"),
			qual:   1,
		}

		var packet = s.make_mice_beacon()

		var dest = packet[len("N0CAL-7>") : len("N0CAL-7>")+6]
		for i := 0; i < len(dest); i++ {
			assert.GreaterOrEqual(t, dest[i], byte(0x30), "destination byte %d", i)
			assert.LessOrEqual(t, dest[i], byte(0x7F), "destination byte %d", i)
		}
	})
}

// TestPlainBeaconRoundTrip feeds our own beacon back through the
// parser the way a digipeated copy would arrive.
func TestPlainBeaconRoundTrip(t *testing.T) {
	var s = test_state()

	*s.mypos() = posit{lat: 37.12345, lon: -122.5432, speed: 42, course: 217, qual: 1}

	var fap, err = aprs_parse(s.make_beacon(""))
	require.NoError(t, err)

	require.NotNil(t, fap.latitude)
	require.NotNil(t, fap.longitude)
	require.NotNil(t, fap.speed)
	require.NotNil(t, fap.course)

	// Within 0.01 minute.
	assert.InDelta(t, 37.12345, *fap.latitude, 0.01/60)
	assert.InDelta(t, -122.5432, *fap.longitude, 0.01/60)

	assert.Equal(t, 217.0, *fap.course)
	assert.InDelta(t, 42.0, *fap.speed/knots_to_kph, 1e-9)

	assert.EqualValues(t, '/', fap.symbol_table)
	assert.EqualValues(t, '>', fap.symbol_code)
}

// TestChooseData walks the WX / PHG / NONE cycle.
func TestChooseData(t *testing.T) {
	var s = test_state()
	s.conf.do_types = (1 << DO_TYPE_WX) | (1 << DO_TYPE_PHG)
	s.conf.power = 5
	s.conf.height = 1
	s.conf.gain = 3
	s.conf.directivity = 2

	s.tel.temp1 = 75
	s.tel.last_tel = s.now()

	var icon byte = '>'

	// Cursor 0 maps to the unconditional NONE slot.
	assert.Equal(t, "hi", s.choose_data(&icon))
	assert.EqualValues(t, '>', icon)

	// Cursor 1: weather, with fresh telemetry.
	assert.Equal(t, ".../...t075hi", s.choose_data(&icon))
	assert.EqualValues(t, '_', icon, "weather overrides the icon")

	// Cursor 2: PHG.
	icon = '>'
	assert.Equal(t, "PHG5132hi", s.choose_data(&icon))
	assert.EqualValues(t, '>', icon)
}

// TestChooseDataStaleWX falls through to PHG when telemetry is old.
func TestChooseDataStaleWX(t *testing.T) {
	var s = test_state()
	s.conf.do_types = (1 << DO_TYPE_WX) | (1 << DO_TYPE_PHG)
	s.tel.last_tel = time.Now().Add(-60 * time.Second)
	s.other_beacon_idx = DO_TYPE_WX

	var icon byte = '>'
	assert.Equal(t, "PHG0000hi", s.choose_data(&icon))
	assert.EqualValues(t, '>', icon)
}

// TestChooseDataAlwaysProduces: whatever the cursor position and
// configuration, some payload comes out.
func TestChooseDataAlwaysProduces(t *testing.T) {
	for start := 0; start < 3; start++ {
		var s = test_state()
		s.other_beacon_idx = start

		var icon byte = '>'
		assert.NotEmpty(t, s.choose_data(&icon), "cursor %d", start)
	}
}

// TestMakeStatusBeacon checks the '>' data type.
func TestMakeStatusBeacon(t *testing.T) {
	var s = test_state()

	assert.Equal(t, "N0CAL-7>APZDMS,WIDE1-1:>hi", s.make_status_beacon())
}

func TestGetDigit(t *testing.T) {
	assert.EqualValues(t, 4, get_digit(1234, 0))
	assert.EqualValues(t, 3, get_digit(1234, 1))
	assert.EqualValues(t, 2, get_digit(1234, 2))
	assert.EqualValues(t, 1, get_digit(1234, 3))
	assert.EqualValues(t, 0, get_digit(1234, 4))
}

func TestSeparateMinutes(t *testing.T) {
	var min, hun = separate_minutes(32.59)
	assert.EqualValues(t, 32, min)
	assert.EqualValues(t, 59, hun, "truncation, not rounding, matches the wire format")

	min, hun = separate_minutes(0)
	assert.EqualValues(t, 0, min)
	assert.EqualValues(t, 0, hun)
}
