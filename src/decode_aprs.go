package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Decode received APRS packet text into structured form.
 *
 * Description:	Input is the monitor format produced by the KISS
 *		helper.  Output is an aprs_packet_t with optional
 *		fields as pointers so "not present" is distinguishable
 *		from zero.  The heard-station cache moves these
 *		pointers between packets when merging.
 *
 * References:	APRS Protocol Reference, chapters 6, 9, 10, 12, 13.
 *		http://www.aprs.org/doc/APRS101.PDF
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
)

type packet_type_e int

const (
	PACKET_LOCATION packet_type_e = iota
	PACKET_STATUS
	PACKET_TELEMETRY
	PACKET_OTHER
)

type wx_report_t struct {
	wind_dir   *float64 /* Degrees. */
	wind_speed *float64 /* m/s. */
	wind_gust  *float64 /* m/s. */
	temp       *float64 /* Celsius. */
	rain_1h    *float64 /* mm. */
	rain_24h   *float64 /* mm. */
	humidity   *int     /* Percent. */
}

type telemetry_report_t struct {
	seq  int
	vals []float64
}

type aprs_packet_t struct {
	src_callsign string
	dst_callsign string
	path         []string /* Digipeater designators, '*' marker retained. */

	ptype packet_type_e

	latitude  *float64 /* Degrees.  Negative for south. */
	longitude *float64 /* Degrees.  Negative for west. */
	altitude  *float64 /* Meters. */
	speed     *float64 /* km/h. */
	course    *float64 /* Degrees. */

	symbol_table byte /* 0 when unknown. */
	symbol_code  byte

	comment []byte
	status  []byte

	phg string /* Four digits, without the PHG prefix. */

	wx_report *wx_report_t
	telemetry *telemetry_report_t
}

func new_float(v float64) *float64 {
	return &v
}

func new_int(v int) *int {
	return &v
}

const knots_to_kph = 1.852
const mph_to_ms = 0.44704

/*-------------------------------------------------------------------
 *
 * Name:        aprs_parse
 *
 * Purpose:     Decode one packet of monitor format text.
 *
 * Inputs:	monitor		- "source>dest,digi1,digi2*:information"
 *
 * Returns:	Decoded packet or error.  Errors mean the packet
 *		should be dropped; they never take the process down.
 *
 *-----------------------------------------------------------------*/

func aprs_parse(monitor string) (*aprs_packet_t, error) {

	var header, info, found = strings.Cut(monitor, ":")
	if !found {
		return nil, fmt.Errorf("no information part")
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("empty information part")
	}

	var src, rest, foundGT = strings.Cut(header, ">")
	if !foundGT || len(src) == 0 {
		return nil, fmt.Errorf("no source callsign")
	}

	var addrs = strings.Split(rest, ",")
	if len(addrs) < 1 || len(addrs[0]) == 0 {
		return nil, fmt.Errorf("no destination")
	}

	var p = &aprs_packet_t{
		src_callsign: src,
		dst_callsign: addrs[0],
		path:         addrs[1:],
		ptype:        PACKET_OTHER,
	}

	switch info[0] {

	case '!', '=':
		decode_position(p, info[1:])

	case '/', '@':
		/* Position with timestamp.  Skip the 7 character time. */
		if len(info) < 8 {
			return nil, fmt.Errorf("short timestamped position")
		}
		decode_position(p, info[8:])

	case '`', '\'':
		if err := decode_mic_e(p, info); err != nil {
			return nil, err
		}

	case '>':
		p.ptype = PACKET_STATUS
		p.status = []byte(info[1:])

	case '_':
		p.ptype = PACKET_LOCATION
		decode_positionless_wx(p, info[1:])

	case 'T':
		if err := decode_telemetry(p, info); err != nil {
			return nil, err
		}

	default:
		p.comment = []byte(info)
	}

	return p, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        decode_position
 *
 * Purpose:     Plain human readable position:  ddmm.mmN/dddmm.mmW$
 *		followed by optional data extension and comment.
 *
 *-----------------------------------------------------------------*/

func decode_position(p *aprs_packet_t, data string) {

	p.ptype = PACKET_LOCATION

	if len(data) < 19 {
		p.comment = []byte(data)
		return
	}

	var lat = latitude_from_nmea(data[0:7], data[7])
	var lon = longitude_from_nmea(data[9:17], data[17])
	if lat == G_UNKNOWN || lon == G_UNKNOWN {
		p.comment = []byte(data)
		return
	}

	p.latitude = new_float(lat)
	p.longitude = new_float(lon)
	p.symbol_table = data[8]
	p.symbol_code = data[18]

	var ext = data[19:]

	/* Complete weather report uses the course/speed slot for wind. */

	if p.symbol_code == '_' {
		decode_wx_data(p, ext)
		return
	}

	/* Course/speed data extension, 7 bytes: ccc/sss */

	if len(ext) >= 7 && ext[3] == '/' &&
		all_digits(ext[0:3]) && all_digits(ext[4:7]) {
		var cse, _ = strconv.Atoi(ext[0:3])
		var spd, _ = strconv.Atoi(ext[4:7])
		p.course = new_float(float64(cse))
		p.speed = new_float(float64(spd) * knots_to_kph)
		ext = ext[7:]
	} else if len(ext) >= 7 && strings.HasPrefix(ext, "PHG") && all_digits(ext[3:7]) {
		p.phg = ext[3:7]
		ext = ext[7:]
	}

	decode_comment(p, ext)
}

func all_digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

/* Pull altitude of the form /A=nnnnnn (feet) out of a comment. */

func decode_comment(p *aprs_packet_t, ext string) {

	if i := strings.Index(ext, "/A="); i >= 0 && len(ext) >= i+9 && all_digits(ext[i+3:i+9]) {
		var ft, _ = strconv.Atoi(ext[i+3 : i+9])
		p.altitude = new_float(float64(ft) / 3.2808399)
		ext = ext[:i] + ext[i+9:]
	}

	if len(ext) > 0 {
		p.comment = []byte(ext)
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        decode_mic_e
 *
 * Purpose:     Decode the compact MIC-E position format.
 *
 * Description:	Latitude digits ride in the AX.25 destination field,
 *		one per character, with extra bits for hemisphere and
 *		the longitude offset.  The information part carries
 *		longitude, speed and course as offset-biased bytes.
 *
 *-----------------------------------------------------------------*/

func decode_mic_e(p *aprs_packet_t, info string) error {

	p.ptype = PACKET_LOCATION

	var dst = p.dst_callsign
	if i := strings.IndexByte(dst, '-'); i >= 0 {
		dst = dst[:i]
	}
	if len(dst) != 6 {
		return fmt.Errorf("MIC-E destination %q not six characters", p.dst_callsign)
	}
	if len(info) < 9 {
		return fmt.Errorf("MIC-E information part too short")
	}

	var digits [6]int
	var bits [6]bool
	for i := 0; i < 6; i++ {
		var c = dst[i]
		switch {
		case c >= '0' && c <= '9':
			digits[i] = int(c - '0')
		case c >= 'A' && c <= 'J':
			digits[i] = int(c - 'A')
			bits[i] = true
		case c >= 'P' && c <= 'Y':
			digits[i] = int(c - 'P')
			bits[i] = true
		case c == 'K' || c == 'L' || c == 'Z':
			digits[i] = 0
		default:
			return fmt.Errorf("MIC-E destination has invalid character %q", c)
		}
	}

	var north = bits[3]
	var lon_offset = bits[4]
	var west = bits[5]

	var lat = float64(digits[0]*10+digits[1]) +
		(float64(digits[2]*10+digits[3]) + float64(digits[4]*10+digits[5])/100.0) / 60.0
	if !north {
		lat = -lat
	}

	/* Longitude degrees from the offset-biased byte. */

	var c = int(info[1])
	var ld int
	switch {
	case c >= 208 && c <= 217:
		ld = c - 108
	case lon_offset:
		ld = c - 28 + 100
	case c >= 118:
		ld = c - 118
	default:
		ld = c - 28
	}

	var m = int(info[2])
	if m >= 88 {
		m -= 88
	} else {
		m -= 28
	}
	var h = int(info[3]) - 28

	var lon = float64(ld) + (float64(m)+float64(h)/100.0)/60.0
	if west {
		lon = -lon
	}

	p.latitude = new_float(lat)
	p.longitude = new_float(lon)

	/* Speed and course. */

	var sp = (int(info[4]) - 108) * 10
	var dc = int(info[5]) - 32
	sp += dc / 10
	var course = (dc%10)*100 + int(info[6]) - 28

	p.speed = new_float(float64(sp) * knots_to_kph)
	p.course = new_float(float64(course))

	p.symbol_code = info[7]
	p.symbol_table = info[8]

	if len(info) > 9 {
		decode_comment(p, info[9:])
	}

	return nil
}

/*-------------------------------------------------------------------
 *
 * Name:        decode_wx_data
 *
 * Purpose:     Weather fields from a complete weather report.
 *
 * Description:	Wind direction/speed take the place of the course and
 *		speed extension, then letter-tagged three digit groups:
 *		g gust, t temperature, r rain hour, p rain day,
 *		h humidity.  Values on the air are mph, Fahrenheit and
 *		hundredths of an inch; stored values are metric like
 *		the rest of the decoded packet.
 *
 *-----------------------------------------------------------------*/

func decode_wx_data(p *aprs_packet_t, ext string) {

	var wx = new(wx_report_t)

	if len(ext) >= 7 && ext[3] == '/' && all_digits(ext[0:3]) && all_digits(ext[4:7]) {
		var dir, _ = strconv.Atoi(ext[0:3])
		var spd, _ = strconv.Atoi(ext[4:7])
		wx.wind_dir = new_float(float64(dir))
		wx.wind_speed = new_float(float64(spd) * mph_to_ms)
		ext = ext[7:]
	}

	ext = decode_wx_fields(wx, ext)

	p.wx_report = wx
	if len(ext) > 0 {
		p.comment = []byte(ext)
	}
}

/* Positionless weather report: _MMDDHHMM then the letter groups. */

func decode_positionless_wx(p *aprs_packet_t, data string) {

	if len(data) >= 8 && all_digits(data[0:8]) {
		data = data[8:]
	}

	var wx = new(wx_report_t)

	if len(data) >= 8 && data[0] == 'c' && all_digits(data[1:4]) && data[4] == 's' && all_digits(data[5:8]) {
		var dir, _ = strconv.Atoi(data[1:4])
		var spd, _ = strconv.Atoi(data[5:8])
		wx.wind_dir = new_float(float64(dir))
		wx.wind_speed = new_float(float64(spd) * mph_to_ms)
		data = data[8:]
	}

	data = decode_wx_fields(wx, data)

	p.wx_report = wx
	if len(data) > 0 {
		p.comment = []byte(data)
	}
}

func decode_wx_fields(wx *wx_report_t, ext string) string {

	for len(ext) >= 3 {
		var tag = ext[0]
		var width = 3
		if tag == 'h' {
			width = 2
		}
		if len(ext) < 1+width || !all_digits(ext[1:1+width]) {
			break
		}
		var v, _ = strconv.Atoi(ext[1 : 1+width])

		switch tag {
		case 'g':
			wx.wind_gust = new_float(float64(v) * mph_to_ms)
		case 't':
			wx.temp = new_float((float64(v) - 32) * 5 / 9)
		case 'r':
			wx.rain_1h = new_float(float64(v) / 100 * 25.4)
		case 'p':
			wx.rain_24h = new_float(float64(v) / 100 * 25.4)
		case 'h':
			wx.humidity = new_int(v)
		default:
			return ext
		}

		ext = ext[1+width:]
	}

	return ext
}

/*-------------------------------------------------------------------
 *
 * Name:        decode_telemetry
 *
 * Purpose:     Telemetry report:  T#nnn,v1,v2,v3,v4,v5,bbbbbbbb
 *
 *-----------------------------------------------------------------*/

func decode_telemetry(p *aprs_packet_t, info string) error {

	if !strings.HasPrefix(info, "T#") {
		p.comment = []byte(info)
		return nil
	}

	var fields = strings.Split(info[2:], ",")
	if len(fields) < 2 {
		return fmt.Errorf("telemetry report with no values")
	}

	var t = new(telemetry_report_t)
	t.seq, _ = strconv.Atoi(fields[0])

	for _, f := range fields[1:] {
		var v, err = strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		t.vals = append(t.vals, v)
	}

	p.ptype = PACKET_TELEMETRY
	p.telemetry = t

	return nil
}
