package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Publish name/value pairs to the display process.
 *
 * Description:	The display front end is a separate process listening
 *		on a datagram socket, either a filesystem socket
 *		(default) or UDP.  Each datagram carries one name=value
 *		pair.  There is no handshake and no acknowledgement;
 *		a send that fails is logged and forgotten.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"net"
	"strings"
	"time"
)

/* Where the pairs go.  Exactly one of the two is set. */

type display_target_t struct {
	unix_path string
	udp_addr  string /* host:port */
}

const DISPLAY_PORT = 9123

/*-------------------------------------------------------------------
 *
 * Name:        display_open
 *
 * Purpose:     Connect the datagram socket once at startup.
 *
 *-----------------------------------------------------------------*/

func display_open(target display_target_t) (net.Conn, error) {

	if target.udp_addr != "" {
		return net.Dial("udp4", target.udp_addr)
	}

	return net.Dial("unixgram", target.unix_path)
}

/*-------------------------------------------------------------------
 *
 * Name:        ui_send
 *
 * Purpose:     Fire-and-forget one name/value pair at the display.
 *
 *-----------------------------------------------------------------*/

func (s *state) ui_send(name string, value string) {

	if s.display == nil {
		return
	}

	var _, err = fmt.Fprintf(s.display, "%s=%s", name, value)
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Display send failed: %s\n", err)
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        display_wx
 *
 * Purpose:     Describe a heard weather report.
 *
 * Description:	The big comment field carries the weather summary, so
 *		the station's own comment (if any) is demoted to the
 *		smaller course field.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_wx(fap *aprs_packet_t) {

	var wx = fap.wx_report
	var report strings.Builder

	if wx.wind_gust != nil && wx.wind_dir != nil && wx.wind_speed != nil {
		fmt.Fprintf(&report, "Wind %s %.0fmph (%.0f gst) ",
			direction(*wx.wind_dir),
			MS_TO_MPH(*wx.wind_speed),
			MS_TO_MPH(*wx.wind_gust))
	} else if wx.wind_dir != nil && wx.wind_speed != nil {
		fmt.Fprintf(&report, "Wind %s %.0f mph ",
			direction(*wx.wind_dir),
			MS_TO_MPH(*wx.wind_speed))
	}

	if wx.temp != nil {
		fmt.Fprintf(&report, "%.0fF ", C_TO_F(*wx.temp))
	}

	if wx.rain_1h != nil && wx.rain_24h != nil {
		fmt.Fprintf(&report, "Rain %.2f\"h%.2f\"d ",
			MM_TO_IN(*wx.rain_1h), MM_TO_IN(*wx.rain_24h))
	} else if wx.rain_1h != nil {
		fmt.Fprintf(&report, "Rain %.2f\"h ", MM_TO_IN(*wx.rain_1h))
	} else if wx.rain_24h != nil {
		fmt.Fprintf(&report, "Rain %.2f\"d ", MM_TO_IN(*wx.rain_24h))
	}

	if wx.humidity != nil {
		fmt.Fprintf(&report, "Hum. %2d%% ", *wx.humidity)
	}

	s.ui_send("AI_COMMENT", report.String())

	if len(fap.comment) > 0 {
		s.ui_send("AI_COURSE", string(fap.comment))
	} else {
		s.ui_send("AI_COURSE", "")
	}
}

func (s *state) display_telemetry(fap *aprs_packet_t) {
	s.ui_send("AI_COURSE", "(Telemetry)")
	s.ui_send("AI_COMMENT", "")
}

/*-------------------------------------------------------------------
 *
 * Name:        display_phg
 *
 * Purpose:     Describe a heard station's power/height/gain.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_phg(fap *aprs_packet_t) {

	if len(fap.phg) != 4 {
		s.ui_send("AI_COURSE", "(Broken PHG)")
		return
	}

	var power = int(fap.phg[0] - '0')
	var height = fap.phg[1]
	var gain = int(fap.phg[2] - '0')
	var dir = int(fap.phg[3] - '0')

	var dirtext = "omni"
	if dir != 0 {
		dirtext = direction(float64(dir) * 45)
	}

	s.ui_send("AI_COMMENT", fmt.Sprintf("Power %dW at %.0fft (%ddB gain @ %s)",
		power*power,
		float64(int(1)<<(height-'0'))*10,
		gain,
		dirtext))

	if len(fap.comment) > 0 {
		s.ui_send("AI_COURSE", string(fap.comment))
	} else {
		s.ui_send("AI_COURSE", "")
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        display_posit
 *
 * Purpose:     Describe an ordinary heard position or status packet.
 *
 * Inputs:	isnew	- False when the same station is re-reporting,
 *			  so fields it omitted this time are not blanked.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_posit(fap *aprs_packet_t, isnew bool) {

	if fap.speed != nil && fap.course != nil && *fap.speed > 0.0 {
		s.ui_send("AI_COURSE", fmt.Sprintf("%.0f MPH %2s",
			KPH_TO_MPH(*fap.speed), direction(*fap.course)))
	} else if isnew {
		s.ui_send("AI_COURSE", "")
	}

	if fap.ptype == PACKET_STATUS && len(fap.status) > 0 {
		s.ui_send("AI_COMMENT", string(fap.status))
	} else if len(fap.comment) > 0 {
		s.ui_send("AI_COMMENT", string(fap.comment))
	} else if isnew {
		s.ui_send("AI_COMMENT", "")
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        display_dist_and_dir
 *
 * Purpose:     Distance and bearing from us to a heard station,
 *		plus how the packet got here.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_dist_and_dir(fap *aprs_packet_t) {

	var buf = ""
	var via = "Direct"
	var mypos = s.mypos()

	for _, p := range fap.path {
		if strings.Contains(p, "*") {
			via = strings.TrimSuffix(p, "*")
		}
	}

	if fap.src_callsign == s.mycall {
		buf = fmt.Sprintf("via %s", via)
	} else if fap.latitude != nil && fap.longitude != nil {
		buf = fmt.Sprintf("%5.1fmi %2s <small>via %s</small>",
			ll_distance_miles(mypos.lat, mypos.lon, *fap.latitude, *fap.longitude),
			direction(ll_bearing_deg(mypos.lat, mypos.lon, *fap.latitude, *fap.longitude)),
			via)
	}

	s.ui_send("AI_DISTANCE", buf)
}

/*-------------------------------------------------------------------
 *
 * Name:        display_packet
 *
 * Purpose:     Show a freshly heard packet in the station pane.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_packet(fap *aprs_packet_t) {

	var isnew = fap.src_callsign != s.last_callsign

	s.ui_send("AI_CALLSIGN", fap.src_callsign)
	s.last_callsign = fap.src_callsign

	s.display_dist_and_dir(fap)

	if fap.wx_report != nil {
		s.display_wx(fap)
	} else if fap.telemetry != nil {
		s.display_telemetry(fap)
	} else if fap.phg != "" {
		s.display_phg(fap)
	} else {
		s.display_posit(fap, isnew)
	}

	s.ui_send("AI_ICON", fmt.Sprintf("%c%c", fap.symbol_table, fap.symbol_code))
}

/*-------------------------------------------------------------------
 *
 * Name:        stored_packet_desc
 *
 * Purpose:     One line summary for a recent-list slot.
 *
 *-----------------------------------------------------------------*/

func stored_packet_desc(fap *aprs_packet_t, index int, mylat float64, mylon float64) string {

	if fap.latitude != nil && fap.longitude != nil {
		return fmt.Sprintf("%d: %-9s <small>%3.0fmi %-2s</small>",
			index, fap.src_callsign,
			ll_distance_miles(mylat, mylon, *fap.latitude, *fap.longitude),
			direction(ll_bearing_deg(mylat, mylon, *fap.latitude, *fap.longitude)))
	}

	return fmt.Sprintf("%d: %-9s", index, fap.src_callsign)
}

/*-------------------------------------------------------------------
 *
 * Name:        update_packets_ui
 *
 * Purpose:     Refresh the recent stations list, oldest to newest.
 *
 *-----------------------------------------------------------------*/

func (s *state) update_packets_ui() {

	var mypos = s.mypos()

	if s.last_packet != nil {
		s.display_dist_and_dir(s.last_packet)
	}

	for i, j := KEEP_PACKETS, s.recent_idx+1; i > 0; i, j = i-1, j+1 {
		var p = s.recent[j%KEEP_PACKETS]

		var name = fmt.Sprintf("AL_%02d", i-1)
		var buf string
		if p != nil {
			buf = stored_packet_desc(p, i, mypos.lat, mypos.lon)
		} else {
			buf = fmt.Sprintf("%d:", i)
		}
		s.ui_send(name, buf)
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        update_mybeacon_status
 *
 * Purpose:     Refresh the signal bars and "last beacon" age.
 *
 * Description:	The digipeat quality register has one bit per recent
 *		transmission; population count over two gives a 0-4
 *		bars figure.
 *
 *-----------------------------------------------------------------*/

func (s *state) update_mybeacon_status() {

	var count = 0
	for i := 0; i < 8; i++ {
		count += int(s.digi_quality>>i) & 0x01
	}

	s.ui_send("G_SIGBARS", fmt.Sprintf("%d", count/2))

	if !s.last_beacon.IsZero() {
		var delta = s.now().Sub(s.last_beacon)
		s.ui_send("G_LASTBEACON", format_time(delta)+" ago")
	} else {
		s.ui_send("G_LASTBEACON", "Never")
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        display_gps_info
 *
 * Purpose:     Refresh our own position, speed and clock readout.
 *
 *-----------------------------------------------------------------*/

func (s *state) display_gps_info() {

	var mypos = s.mypos()

	var status = "Locked"
	if mypos.qual == 0 {
		status = "<span background='red'>INVALID</span>"
	}

	var _, tz_offset = time.Now().Zone()

	var hour = (mypos.tstamp / 10000) + tz_offset/3600
	var min = (mypos.tstamp / 100) % 100
	var sec = mypos.tstamp % 100

	if hour < 0 {
		hour += 24
	}

	s.ui_send("G_LATLON", fmt.Sprintf("%7.5f %8.5f   Time %02d:%02d:%02d   %s: %2d sats",
		mypos.lat, mypos.lon, hour, min, sec, status, mypos.sats))

	if mypos.speed > 1.0 {
		s.ui_send("G_SPD", fmt.Sprintf("%.0f MPH %2s, Alt %.0f ft",
			KTS_TO_MPH(mypos.speed), direction(mypos.course), mypos.alt))
	} else {
		s.ui_send("G_SPD", fmt.Sprintf("Stationary, Alt %.0f ft", mypos.alt))
	}

	s.ui_send("G_MYCALL", s.mycall)
}
