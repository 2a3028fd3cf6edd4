package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Read the configuration file.
 *
 * Description:	INI format, sections [tnc] [gps] [telemetry] [station]
 *		[beaconing] [static] [comments].  Command line options
 *		for the port names win over the file.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"gopkg.in/ini.v1"
)

type smart_beacon_point_t struct {
	int_sec float64 /* Seconds. */
	speed   float64 /* MPH. */
}

type config_t struct {
	tnc      string
	tnc_rate int
	gps      string
	gps_rate int
	tel      string
	tel_rate int

	gps_type string
	testing  bool
	verbose  bool
	icon     string

	digi_path string

	power       int
	height      int
	gain        int
	directivity int

	atrest_rate        int
	sb_low             smart_beacon_point_t
	sb_high            smart_beacon_point_t
	course_change_min  int
	course_change_slope int
	after_stop         int

	do_types uint /* Bit per DO_TYPE_*. */

	comments []string

	config string

	static_lat float64
	static_lon float64
	static_alt float64
	static_spd float64
	static_crs float64

	display display_target_t
}

/*-------------------------------------------------------------------
 *
 * Name:        parse_ini
 *
 * Purpose:     Fill in configuration from the INI file.
 *
 * Inputs:	filename	- Path to the file.
 *		s		- State with any command line values
 *				  already applied.
 *
 * Returns:	Error for anything that should stop startup: missing
 *		file, malformed icon.
 *
 *-----------------------------------------------------------------*/

func (s *state) parse_ini(filename string) error {

	var cfg, err = ini.Load(filename)
	if err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}

	var conf = &s.conf

	if conf.tnc == "" {
		conf.tnc = cfg.Section("tnc").Key("port").String()
	}
	conf.tnc_rate = cfg.Section("tnc").Key("rate").MustInt(9600)

	if conf.gps == "" {
		conf.gps = cfg.Section("gps").Key("port").String()
	}
	conf.gps_type = cfg.Section("gps").Key("type").MustString("static")
	conf.gps_rate = cfg.Section("gps").Key("rate").MustInt(4800)

	if conf.tel == "" {
		conf.tel = cfg.Section("telemetry").Key("port").String()
	}
	conf.tel_rate = cfg.Section("telemetry").Key("rate").MustInt(9600)

	s.mycall = cfg.Section("station").Key("mycall").MustString("N0CAL-7")
	conf.icon = cfg.Section("station").Key("icon").MustString("/>")

	if len(conf.icon) != 2 {
		return fmt.Errorf("icon must be two characters, not `%s'", conf.icon)
	}

	conf.digi_path = cfg.Section("station").Key("digi_path").MustString("WIDE1-1,WIDE2-1")

	conf.power = cfg.Section("station").Key("power").MustInt(0)
	conf.height = cfg.Section("station").Key("height").MustInt(0)
	conf.gain = cfg.Section("station").Key("gain").MustInt(0)
	conf.directivity = cfg.Section("station").Key("directivity").MustInt(0)

	var b = cfg.Section("beaconing")
	conf.atrest_rate = b.Key("atrest_rate").MustInt(600)
	conf.sb_low.speed = b.Key("min_speed").MustFloat64(10)
	conf.sb_low.int_sec = b.Key("min_rate").MustFloat64(600)
	conf.sb_high.speed = b.Key("max_speed").MustFloat64(60)
	conf.sb_high.int_sec = b.Key("max_rate").MustFloat64(60)
	conf.course_change_min = b.Key("course_change_min").MustInt(30)
	conf.course_change_slope = b.Key("course_change_slope").MustInt(255)
	conf.after_stop = b.Key("after_stop").MustInt(180)

	conf.static_lat = cfg.Section("static").Key("lat").MustFloat64(0)
	conf.static_lon = cfg.Section("static").Key("lon").MustFloat64(0)
	conf.static_alt = cfg.Section("static").Key("alt").MustFloat64(0)
	conf.static_spd = cfg.Section("static").Key("speed").MustFloat64(0)
	conf.static_crs = cfg.Section("static").Key("course").MustFloat64(0)

	for _, t := range parse_list(cfg.Section("station").Key("beacon_types").MustString("posit")) {
		switch t {
		case "weather":
			conf.do_types |= 1 << DO_TYPE_WX
		case "phg":
			conf.do_types |= 1 << DO_TYPE_PHG
		case "posit":
			/* Position beacons are always on. */
		default:
			text_color_set(DW_COLOR_ERROR)
			dw_printf("WARNING: Unknown beacon type %s\n", t)
		}
	}

	for _, name := range parse_list(cfg.Section("comments").Key("enabled").String()) {
		var text = cfg.Section("comments").Key(name).MustString("INVAL")
		conf.comments = append(conf.comments, text)
	}

	return nil
}
