package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Main program for the mobile APRS station controller.
 *
 * Description:	Ties together:
 *
 *			KISS TNC on a serial port.
 *			NMEA GPS receiver, or a static position.
 *			Optional telemetry feed.
 *			SmartBeaconing position/status transmission.
 *			Datagram publisher for the display process.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const DEFAULT_DISPLAY_SOCK = "/tmp/aprs_ui.sock"

/*-------------------------------------------------------------------
 *
 * Name:        DantrackerMain
 *
 * Purpose:     Parse options, read configuration, open everything,
 *		and hand control to the event loop.
 *
 * Description:	Exits with code 1 for invalid arguments or anything
 *		that prevents startup.  After startup nothing is fatal;
 *		bad input of every kind is logged and dropped.
 *
 *--------------------------------------------------------------------*/

func DantrackerMain() {

	var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "dantracker",
	})

	var tncPort = pflag.StringP("tnc", "t", "", "Serial port of the KISS TNC.")
	var gpsPort = pflag.StringP("gps", "g", "", "Serial port of the NMEA GPS receiver.")
	var telPort = pflag.StringP("telemetry", "T", "", "Serial port of the telemetry feed.")
	var confFile = pflag.StringP("conf", "c", "aprs.ini", "Configuration file name.")
	var display = pflag.StringP("display", "d", "", "Send display updates to this UDP host instead of the local socket.")
	var testing = pflag.Bool("testing", false, "Perturb the static position for bench testing.")
	var verbose = pflag.BoolP("verbose", "v", false, "Log to the console instead of the log file.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mobile APRS station controller.\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help || len(pflag.Args()) > 0 {
		pflag.Usage()
		os.Exit(1)
	}

	dw_printf("APRS %s\n", version_string())

	var s = new_state()
	s.conf.tnc = *tncPort
	s.conf.gps = *gpsPort
	s.conf.tel = *telPort
	s.conf.testing = *testing
	s.conf.verbose = *verbose
	s.conf.config = *confFile

	s.conf.display.unix_path = DEFAULT_DISPLAY_SOCK
	if *display != "" {
		s.conf.display.unix_path = ""
		s.conf.display.udp_addr = fmt.Sprintf("%s:%d", *display, DISPLAY_PORT)
	}

	if err := s.parse_ini(*confFile); err != nil {
		logger.Error("Invalid config", "err", err)
		os.Exit(1)
	}

	if !s.conf.verbose {
		if err := redir_log(); err != nil {
			logger.Error("Could not redirect log", "err", err)
		}
		text_color_init(0)
	} else {
		text_color_init(1)
	}

	if s.conf.testing {
		s.digi_quality = 0xFF
	}

	/*
	 * The TNC is mandatory.  GPS and telemetry are optional.  With
	 * gps type "static" (the default) no receiver is opened and the
	 * position comes from the [static] config section.
	 */

	s.tncfd = serial_port_open(s.conf.tnc, s.conf.tnc_rate)
	if s.tncfd == nil {
		logger.Error("Failed to open TNC", "port", s.conf.tnc)
		os.Exit(1)
	}
	go tnc_reader(s.tncfd, s.tncch)

	if s.conf.gps != "" && s.conf.gps_type != "static" {
		var gpsfd = serial_port_open(s.conf.gps, s.conf.gps_rate)
		if gpsfd == nil {
			logger.Error("Failed to open GPS", "port", s.conf.gps)
			os.Exit(1)
		}
		go line_reader("GPS", gpsfd, s.gpsch)
	}

	if s.conf.tel != "" {
		var telfd = serial_port_open(s.conf.tel, s.conf.tel_rate)
		if telfd == nil {
			logger.Error("Failed to open telemetry", "port", s.conf.tel)
			os.Exit(1)
		}
		go line_reader("telemetry", telfd, s.telch)
	}

	var conn, err = display_open(s.conf.display)
	if err != nil {
		/* The display may simply not be running yet.  Not fatal. */
		logger.Warn("Display socket unavailable", "err", err)
	} else {
		s.display = conn
	}

	s.run_loop()
}
