package dantracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/* A state with a settable clock for exercising the scheduler. */

func sb_state(now *time.Time) *state {
	var s = test_state()
	s.now = func() time.Time { return *now }
	return s
}

// TestSmartBeaconFracto: cruising inside the speed zone interpolates
// the interval, and a young last-beacon suppresses transmission.
func TestSmartBeaconFracto(t *testing.T) {
	var now = time.Date(2011, 6, 4, 12, 0, 0, 0, time.UTC)
	var s = sb_state(&now)

	s.last_gps_data = now
	s.last_beacon = now.Add(-90 * time.Second)
	s.last_moving = now.Add(-10 * time.Second)
	s.last_beacon_pos.course = 0

	*s.mypos() = posit{speed: 35.0 / 1.15077945, course: 20, qual: 1}

	var req, reason = s.sb_decide()

	assert.Equal(t, "FRACTO", reason)
	assert.InDelta(t, 330, req, 1, "(540*(1-(35-10)/50))+60")

	// 90 seconds elapsed < 330 required: no beacon yet.
	assert.False(t, s.should_beacon())
}

// TestSmartBeaconCourse: a real turn transmits immediately.
func TestSmartBeaconCourse(t *testing.T) {
	var now = time.Date(2011, 6, 4, 12, 0, 0, 0, time.UTC)
	var s = sb_state(&now)

	s.last_gps_data = now
	s.last_beacon = now.Add(-15 * time.Second)
	s.last_moving = now.Add(-10 * time.Second)
	s.last_beacon_pos.course = 0

	// course_thresh = 30 + 255/35 = 37.3; delta of 40 beats it.
	*s.mypos() = posit{speed: 35.0 / 1.15077945, course: 40, qual: 1}

	var req, reason = s.sb_decide()

	assert.Equal(t, "COURSE", reason)
	assert.Equal(t, sb_now, req)
	assert.True(t, s.should_beacon())
}

// TestSmartBeaconSpeedBoundaries: exactly at a zone edge still counts
// as inside the zone.
func TestSmartBeaconSpeedBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		knots  float64
		expect string
	}{
		{"below low point", 5.0 / 1.15077945, "SLOWTO"},
		{"exactly low point", 8.0, "FRACTO"},  /* conf pinned below */
		{"exactly high point", 40.0, "FRACTO"},
		{"above high point", 70.0 / 1.15077945, "FASTTO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var now = time.Now()
			var s = sb_state(&now)

			// Pin the zone edges to the exact MPH equivalents of the
			// boundary cases so the comparison really is equality.
			s.conf.sb_low.speed = KTS_TO_MPH(8.0)
			s.conf.sb_high.speed = KTS_TO_MPH(40.0)

			s.last_gps_data = now
			*s.mypos() = posit{speed: tt.knots, course: 0, qual: 1}

			var _, reason = s.sb_decide()
			assert.Equal(t, tt.expect, reason)
		})
	}
}

// TestSmartBeaconCourseNeedsSpeed: course changes at a crawl are noise.
func TestSmartBeaconCourseNeedsSpeed(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.last_gps_data = now
	s.last_moving = now
	s.last_beacon_pos.course = 0

	// 1.5 knots is moving (> 1) but under the 2 MPH course floor.
	*s.mypos() = posit{speed: 1.5, course: 180, qual: 1}

	var _, reason = s.sb_decide()
	assert.NotEqual(t, "COURSE", reason)
	assert.Equal(t, "SLOWTO", reason)
}

// TestSmartBeaconStopped: the after-stop beacon fires exactly once.
func TestSmartBeaconStopped(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.last_gps_data = now
	s.last_moving = now.Add(-200 * time.Second) /* after_stop is 180. */

	*s.mypos() = posit{speed: 0, qual: 1}

	var req, reason = s.sb_decide()
	assert.Equal(t, "STOPPED", reason)
	assert.Equal(t, sb_now, req)
	assert.True(t, s.last_moving.IsZero(), "last moving timestamp is consumed")

	// A second tick after the transition does not re-fire.
	req, reason = s.sb_decide()
	assert.Equal(t, "ATREST", reason)
	assert.Equal(t, s.conf.atrest_rate, req)
}

// TestSmartBeaconNoData: GPS silence invalidates the fix.
func TestSmartBeaconNoData(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.last_gps_data = now.Add(-31 * time.Second)
	*s.mypos() = posit{speed: 10, qual: 1, sats: 7}

	var req, reason = s.sb_decide()
	assert.Equal(t, "NODATA", reason)
	assert.Equal(t, sb_skip, req)
	assert.Equal(t, 0, s.mypos().qual)
	assert.Equal(t, 0, s.mypos().sats)
}

// TestSmartBeaconNoLock: an invalid fix is never encoded.
func TestSmartBeaconNoLock(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.last_gps_data = now
	*s.mypos() = posit{speed: 10, qual: 0}

	var req, reason = s.sb_decide()
	assert.Equal(t, "NOLOCK", reason)
	assert.Equal(t, sb_skip, req)
}

// TestBeaconTenSecondFloor: nothing overrides the 10 second spacing,
// not even a hard turn.
func TestBeaconTenSecondFloor(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.last_gps_data = now
	s.last_beacon = now.Add(-5 * time.Second)
	s.last_beacon_pos.course = 0
	*s.mypos() = posit{speed: 35.0 / 1.15077945, course: 90, qual: 1}

	assert.False(t, s.should_beacon())
}

// TestBeaconCheckThrottle: the scheduler only evaluates every 500 ms.
func TestBeaconCheckThrottle(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.max_beacon_check = now.Add(-100 * time.Millisecond)
	s.last_gps_data = now
	*s.mypos() = posit{qual: 1}

	var before = s.last_beacon
	s.beacon()
	assert.Equal(t, before, s.last_beacon, "no decision inside the 500 ms window")
}

// TestBeaconUpdatesQualityRegister: each transmission shifts the
// digipeat quality register left.
func TestBeaconUpdatesQualityRegister(t *testing.T) {
	var now = time.Now()
	var s = sb_state(&now)

	s.digi_quality = 0xFF
	s.last_gps_data = now
	s.last_beacon = now.Add(-3600 * time.Second)
	*s.mypos() = posit{lat: 45, lon: -120, speed: 0, qual: 1}

	s.beacon()

	assert.EqualValues(t, 0xFE, s.digi_quality)
	assert.False(t, s.last_beacon.IsZero())
	assert.Equal(t, *s.mypos(), s.last_beacon_pos)
}
