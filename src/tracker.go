package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	The tracker itself: one state record, three serial
 *		sources, one event loop.
 *
 * Description:	Each serial source has a reader goroutine that turns
 *		the byte stream into complete units (KISS frames, NMEA
 *		sentences, telemetry lines) and feeds a channel.  The
 *		loop goroutine owns every bit of mutable state.  It
 *		waits up to one second for input, drains whatever is
 *		pending in the fixed order TNC, GPS, telemetry, then
 *		offers the tick to the beacon scheduler.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pkg/term"
)

type state struct {
	conf config_t

	mycall string

	positions [KEEP_POSITS]posit
	mypos_idx int

	last_beacon_pos posit

	tel telemetry_t

	last_packet *aprs_packet_t /* In case we don't store it below. */
	recent      [KEEP_PACKETS]*aprs_packet_t
	recent_idx  int

	last_callsign string /* Most recently displayed station. */

	last_gps_update  time.Time
	last_gps_data    time.Time
	last_beacon      time.Time
	last_time_set    time.Time
	last_moving      time.Time
	last_status      time.Time
	max_beacon_check time.Time

	comment_idx      int
	other_beacon_idx int

	digi_quality uint8

	tncfd   *term.Term
	display net.Conn

	tncch chan []byte
	gpsch chan string
	telch chan string

	/* Clock, replaceable by tests. */
	now func() time.Time
}

func new_state() *state {
	return &state{
		tncch: make(chan []byte, 16),
		gpsch: make(chan string, 16),
		telch: make(chan string, 16),
		now:   time.Now,
	}
}

func (s *state) has_been(t time.Time, n time.Duration) bool {
	return s.now().Sub(t) > n
}

/*-------------------------------------------------------------------
 *
 * Name:        handle_incoming_packet
 *
 * Purpose:     Process one KISS frame from the TNC.
 *
 * Description:	Hearing our own callsign come back means a digipeater
 *		repeated us; that feeds the quality register rather
 *		than the cache.  If the previous packet received from
 *		the TNC was also ours, merge its fields in so a
 *		heard-back beacon shows full state on the display.
 *		Packets we transmit are not recorded for this merge;
 *		only received packets are.
 *
 *-----------------------------------------------------------------*/

func (s *state) handle_incoming_packet(frame []byte) {

	var packet, err = kiss_to_tnc2(frame)
	if err != nil {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Unusable frame from TNC: %s\n", err)
		return
	}

	text_color_set(DW_COLOR_REC)
	dw_printf("%s\n", packet)

	fap, perr := aprs_parse(packet)
	if perr != nil {
		if s.conf.verbose {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Parse failed: %s\n", perr)
		}
		return
	}

	if fap.src_callsign == s.mycall {
		s.digi_quality |= 1
		s.update_mybeacon_status()
		if s.last_packet != nil && s.last_packet.src_callsign == s.mycall {
			/* Special case: if the last packet is also ours,
			 * merge with the new one since we don't store
			 * our own. */
			merge_packets(fap, s.last_packet)
		}
	}

	s.display_packet(fap)
	s.last_packet = fap
	s.store_packet(fap)
	s.ui_send("I_RX", "1000")
}

/*-------------------------------------------------------------------
 *
 * Name:        handle_gps_line
 *
 * Purpose:     Process one NMEA sentence and refresh the periodic
 *		GPS-driven display items.
 *
 *-----------------------------------------------------------------*/

func (s *state) handle_gps_line(line string) {

	if s.parse_gps_string(line) {
		s.last_gps_data = s.now()
	}

	if s.mypos().speed > 0 {
		s.last_moving = s.now()
	}

	if s.has_been(s.last_gps_update, 1*time.Second) {
		s.display_gps_info()
		s.last_gps_update = s.now()
		s.set_time()
		s.update_mybeacon_status()
		s.update_packets_ui()
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        set_time
 *
 * Purpose:     Set the system clock from GPS time, at most once
 *		every couple of minutes, and only with a solid fix.
 *
 *-----------------------------------------------------------------*/

func (s *state) set_time() {

	var mypos = s.mypos()

	if mypos.qual == 0 {
		return /* No fix, no set. */
	}
	if mypos.sats < 3 {
		return /* Not enough sats, don't set. */
	}
	if !s.has_been(s.last_time_set, 120*time.Second) {
		return /* Too recent. */
	}

	var hour = mypos.tstamp / 10000
	var min = (mypos.tstamp / 100) % 100
	var sec = mypos.tstamp % 100

	var day = mypos.dstamp / 10000
	var mon = (mypos.dstamp / 100) % 100
	var year = mypos.dstamp % 100

	var timestr = fmt.Sprintf("date -u %02d%02d%02d%02d20%02d.%02d",
		mon, day, hour, min, year, sec)

	var _, err = dw_run_cmd(timestr, 2)
	text_color_set(DW_COLOR_INFO)
	if err == nil {
		dw_printf("Setting date %s: OK\n", timestr)
	} else {
		dw_printf("Setting date %s: FAIL\n", timestr)
	}
	s.last_time_set = s.now()
}

/*-------------------------------------------------------------------
 *
 * Name:        fake_gps_data
 *
 * Purpose:     Synthesize a fix from the [static] configuration.
 *
 * Description:	With --testing the course creeps so the SmartBeaconing
 *		corner logic can be exercised on the bench.
 *
 *-----------------------------------------------------------------*/

func (s *state) fake_gps_data() {

	var mypos = s.mypos()

	if s.conf.testing {
		s.conf.static_crs += 0.1
	}

	mypos.lat = s.conf.static_lat
	mypos.lon = s.conf.static_lon
	mypos.alt = s.conf.static_alt
	mypos.speed = s.conf.static_spd
	mypos.course = s.conf.static_crs

	mypos.qual = 1
	mypos.sats = 0 /* We may claim qual=1, but no sats. */

	s.last_gps_data = s.now()
	s.tel.temp1 = 75
	s.tel.voltage = 13.8
	s.tel.last_tel = s.now()

	if s.has_been(s.last_gps_update, 3*time.Second) {
		s.display_gps_info()
		s.last_gps_update = s.now()
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        tnc_reader / gps_reader / tel_reader
 *
 * Purpose:     Turn the serial byte streams into complete units.
 *
 *-----------------------------------------------------------------*/

func tnc_reader(fd *term.Term, ch chan<- []byte) {

	var kf kiss_frame_t

	for {
		var b, err = serial_port_get1(fd)
		if err != nil {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Lost communication with TNC.\n")
			close(ch)
			return
		}

		if frame := kiss_rec_byte(&kf, b); frame != nil {
			ch <- frame
		}
	}
}

func line_reader(name string, fd *term.Term, ch chan<- string) {

	var line []byte

	for {
		var b, err = serial_port_get1(fd)
		if err != nil {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Lost communication with %s.\n", name)
			close(ch)
			return
		}

		switch b {
		case '\r', '\n':
			if len(line) > 0 {
				ch <- string(line)
				line = line[:0]
			}
		default:
			if len(line) < 256 {
				line = append(line, b)
			} else {
				/* Runaway line.  Start over. */
				line = line[:0]
			}
		}
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        run_loop
 *
 * Purpose:     The main event loop.  Never returns.
 *
 *-----------------------------------------------------------------*/

func (s *state) run_loop() {

	var tick = time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for {
		if s.conf.gps_type == "static" {
			s.fake_gps_data()
		}

		/* Wait for something to happen, at most a second. */

		select {
		case frame, ok := <-s.tncch:
			if !ok {
				s.tncch = nil /* Reader died.  Stop selecting on it. */
			} else {
				s.handle_incoming_packet(frame)
			}
		case line, ok := <-s.gpsch:
			if !ok {
				s.gpsch = nil
			} else {
				s.handle_gps_line(line)
			}
		case line, ok := <-s.telch:
			if !ok {
				s.telch = nil
			} else {
				s.handle_telemetry(line)
			}
		case <-tick.C:
		}

		/* Drain anything else pending, TNC first. */

		s.drain_pending()

		s.beacon()

		os.Stdout.Sync()
	}
}

func (s *state) drain_pending() {

	for {
		select {
		case frame, ok := <-s.tncch:
			if !ok {
				s.tncch = nil
			} else {
				s.handle_incoming_packet(frame)
				continue
			}
		default:
		}

		select {
		case line, ok := <-s.gpsch:
			if !ok {
				s.gpsch = nil
			} else {
				s.handle_gps_line(line)
				continue
			}
		default:
		}

		select {
		case line, ok := <-s.telch:
			if !ok {
				s.telch = nil
			} else {
				s.handle_telemetry(line)
				continue
			}
		default:
		}

		return
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        redir_log
 *
 * Purpose:     Send our chatter to a file when running headless.
 *
 *-----------------------------------------------------------------*/

func redir_log() error {

	var f, err = os.OpenFile("/tmp/aprs.log", os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	os.Stdout = f
	os.Stderr = f

	return nil
}
