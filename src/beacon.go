package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Decide when to transmit and send the beacons.
 *
 * Description:	SmartBeaconing: the transmit interval follows speed
 *		between a (low speed, long interval) point and a
 *		(high speed, short interval) point, with immediate
 *		transmission on a significant course change and a
 *		single wrap-up beacon shortly after coming to a stop.
 *
 *		Two floors protect the channel regardless of anything
 *		else: decisions are evaluated at most twice a second
 *		and transmissions are never closer than 10 seconds.
 *
 *---------------------------------------------------------------*/

import (
	"math"
	"time"
)

/* Decision from the SmartBeaconing calculation.
 * req == sb_skip	never (this time around)
 * req == sb_now	immediately
 * req > 0		after that many seconds since the last beacon
 */

const sb_skip = 0
const sb_now = -1

/*-------------------------------------------------------------------
 *
 * Name:        sb_course_change_thresh
 *
 * Purpose:     Course change, in degrees, that triggers a corner beacon.
 *
 * Description:	The threshold eases off as speed rises: at walking
 *		pace a heading swing means little, at highway speed
 *		it is a real turn.
 *
 *-----------------------------------------------------------------*/

func (s *state) sb_course_change_thresh() float64 {

	var mph = KTS_TO_MPH(s.mypos().speed)

	return float64(s.conf.course_change_min) + float64(s.conf.course_change_slope)/mph
}

/*-------------------------------------------------------------------
 *
 * Name:        sb_decide
 *
 * Purpose:     The SmartBeaconing decision for the current fix.
 *
 * Returns:	req	- sb_skip, sb_now, or required seconds since
 *			  the previous transmission.
 *		reason	- Mnemonic for the display.
 *
 * Description:	First match wins, in this order:
 *
 *		NODATA	GPS silent for 30 s.  Invalidate the fix.
 *		NOLOCK	No fix.
 *		STOPPED	Stopped long enough; one final beacon.
 *		ATREST	Not moving; use the at-rest interval.
 *		COURSE	Significant course change while moving.
 *		SLOWTO	Below the low point; its interval.
 *		FASTTO	Above the high point; its interval.
 *		FRACTO	Interval interpolated within the speed zone.
 *
 *-----------------------------------------------------------------*/

func (s *state) sb_decide() (int, string) {

	var mypos = s.mypos()

	var d_speed = s.conf.sb_high.speed - s.conf.sb_low.speed
	var d_rate = s.conf.sb_low.int_sec - s.conf.sb_high.int_sec

	/* The fractional penetration into the lo/hi zone. */

	var speed_frac = (KTS_TO_MPH(mypos.speed) - s.conf.sb_low.speed) / d_speed

	/* Determine the fraction that we are slower than the max. */

	var sb_min_delta = d_rate*(1-speed_frac) + s.conf.sb_high.int_sec

	/* Never when we aren't getting data anymore. */

	if s.has_been(s.last_gps_data, 30*time.Second) {
		mypos.qual = 0
		mypos.sats = 0
		return sb_skip, "NODATA"
	}

	/* Never when we don't have a fix. */

	if mypos.qual == 0 {
		return sb_skip, "NOLOCK"
	}

	/* If we have recently stopped moving, do one beacon. */

	if !s.last_moving.IsZero() &&
		s.has_been(s.last_moving, time.Duration(s.conf.after_stop)*time.Second) {
		s.last_moving = time.Time{}
		return sb_now, "STOPPED"
	}

	/* If we're not moving at all, choose the "at rest" rate. */

	if mypos.speed <= 1 {
		return s.conf.atrest_rate, "ATREST"
	}

	/* SmartBeaconing: Course Change (only if moving). */

	var sb_thresh = s.sb_course_change_thresh()
	var sb_change = math.Abs(s.last_beacon_pos.course - mypos.course)

	if sb_change > sb_thresh && KTS_TO_MPH(mypos.speed) > 2.0 {
		dw_printf("SB: Angle changed by %.0f (>%.0f)\n", sb_change, sb_thresh)
		return sb_now, "COURSE"
	}

	/* SmartBeaconing: Range-based variable speed beaconing. */

	/* If we're going below the low point, use that interval. */

	if KTS_TO_MPH(mypos.speed) < s.conf.sb_low.speed {
		return int(s.conf.sb_low.int_sec), "SLOWTO"
	}

	/* If we're going above the high point, use that interval. */

	if KTS_TO_MPH(mypos.speed) > s.conf.sb_high.speed {
		return int(s.conf.sb_high.int_sec), "FASTTO"
	}

	/* We must be in the speed zone, so adjust interval according
	 * to the fractional penetration of the speed range. */

	return int(sb_min_delta), "FRACTO"
}

/*-------------------------------------------------------------------
 *
 * Name:        should_beacon
 *
 * Purpose:     Apply the SmartBeaconing decision to the clock.
 *
 * Description:	Also posts the decision to the display so the operator
 *		can see why the tracker is or is not transmitting.
 *
 *-----------------------------------------------------------------*/

func (s *state) should_beacon() bool {

	var delta = s.now().Sub(s.last_beacon)

	/* NEVER more often than every 10 seconds! */

	if delta < 10*time.Second {
		return false
	}

	var req, reason = s.sb_decide()

	if reason != "" {
		if req <= 0 {
			s.ui_send("G_REASON", reason)
		} else {
			s.ui_send("G_REASON", "Every "+format_time(time.Duration(req)*time.Second))
		}
	}

	if req == sb_skip {
		s.update_mybeacon_status()
		return false
	} else if req == sb_now {
		return true
	}

	return delta > time.Duration(req)*time.Second
}

/*-------------------------------------------------------------------
 *
 * Name:        send_beacon
 *
 * Purpose:     Convert one packet to KISS and give it to the TNC.
 *
 *-----------------------------------------------------------------*/

func (s *state) send_beacon(packet string) bool {

	text_color_set(DW_COLOR_XMIT)
	dw_printf("Sending Packet: %s\n", packet)

	var frame, err = tnc2_to_kiss(packet)
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Failed to make beacon KISS packet: %s\n", err)
		return false
	}

	return serial_port_write(s.tncfd, frame) == len(frame)
}

/*-------------------------------------------------------------------
 *
 * Name:        beacon
 *
 * Purpose:     Offer a scheduler tick; transmit if it is time.
 *
 * Description:	When moving at a reasonable clip, send the compact
 *		MIC-E form, followed every couple of minutes by a
 *		status packet.  Otherwise the full human readable
 *		position.
 *
 *-----------------------------------------------------------------*/

func (s *state) beacon() {

	/* Don't even check but every half-second. */

	if !s.has_been(s.max_beacon_check, 500*time.Millisecond) {
		return
	}
	s.max_beacon_check = s.now()

	if !s.should_beacon() {
		return
	}

	if s.mypos().speed > 5 {
		/* Send a short MIC-E position beacon. */
		s.send_beacon(s.make_mice_beacon())

		if s.has_been(s.last_status, 120*time.Second) {
			/* Follow up with a status packet. */
			s.send_beacon(s.make_status_beacon())
			s.last_status = s.now()
		}
	} else {
		s.send_beacon(s.make_beacon(""))
	}

	s.last_beacon = s.now()
	s.digi_quality <<= 1
	s.update_mybeacon_status()

	s.ui_send("I_TX", "1000")

	s.last_beacon_pos = *s.mypos()
}
