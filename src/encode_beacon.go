package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Construct outgoing beacon packets in monitor format.
 *
 * Description:	Three flavors:
 *
 *		  - plain position, '!' data type with human readable
 *		    latitude and longitude,
 *		  - MIC-E compressed position, latitude riding in the
 *		    destination address,
 *		  - status, '>' free text.
 *
 * References:	APRS Protocol Reference, chapters 8, 9, 10.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"time"
)

/* Destination for packets we originate. */

const APRS_TOCALL = "APZDMS"

/* Beacon data types.  Also bit positions in conf.do_types. */

const DO_TYPE_NONE = 0
const DO_TYPE_WX = 1
const DO_TYPE_PHG = 2

/*-------------------------------------------------------------------
 *
 * Name:        choose_data
 *
 * Purpose:     Select payload text for the next position beacon.
 *
 * Inputs:	req_icon	- Icon code character, possibly
 *				  overridden for a weather report.
 *
 * Description:	A three position cycle over {WX, PHG, NONE}.  Start at
 *		the cursor and take the first entry whose preconditions
 *		hold.  The final NONE entry is unconditional so some
 *		payload is always produced.
 *
 *-----------------------------------------------------------------*/

func (s *state) choose_data(req_icon *byte) string {

	var comment, err = s.get_comment()
	if err != nil {
		comment = "Error"
	}

	var idx = s.other_beacon_idx % 3
	s.other_beacon_idx++

	/* Evaluation order is WX, PHG, NONE.  The cursor picks how far
	 * down the chain we start. */

	var start int
	switch idx {
	case DO_TYPE_WX:
		start = 0
	case DO_TYPE_PHG:
		start = 1
	default:
		start = 2
	}

	for c := start; ; c++ {
		switch c {
		case 0:
			if (s.conf.do_types&(1<<DO_TYPE_WX)) != 0 &&
				!s.has_been(s.tel.last_tel, 30*time.Second) {
				*req_icon = '_'
				return fmt.Sprintf(".../...t%03.0f%s", s.tel.temp1, comment)
			}
		case 1:
			if (s.conf.do_types & (1 << DO_TYPE_PHG)) != 0 {
				return fmt.Sprintf("PHG%1d%1d%1d%1d%s",
					s.conf.power, s.conf.height,
					s.conf.gain, s.conf.directivity,
					comment)
			}
		default:
			return comment
		}
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        separate_minutes
 *
 * Purpose:     Split decimal minutes into whole minutes and
 *		hundredths.
 *
 *-----------------------------------------------------------------*/

func separate_minutes(minutes float64) (byte, byte) {

	var min, hun = math.Modf(minutes)

	return byte(min), byte(hun * 100)
}

/*-------------------------------------------------------------------
 *
 * Name:        get_digit
 *
 * Purpose:     Get the @digit-th digit of a base-ten number.
 *
 *		1234
 *		|||^-- 0
 *		||^--- 1
 *		|^---- 2
 *		^----- 3
 *
 *-----------------------------------------------------------------*/

func get_digit(value int, digit int) byte {

	value /= int(math.Pow(10, float64(digit)))

	return byte(value % 10)
}

/*-------------------------------------------------------------------
 *
 * Name:        make_mice_beacon
 *
 * Purpose:     Compact position beacon for when we are moving.
 *
 * Description:	The six destination characters each carry one base-10
 *		latitude digit in the low nibble, OR-ed with bits for
 *		message code, hemisphere and the longitude offset.
 *		Everything stays in the printable range because the
 *		destination doubles as an AX.25 address.
 *
 *		The information part is the longitude, speed and course
 *		as offset-biased bytes, then symbol code before symbol
 *		table (opposite of the plain format).
 *
 *-----------------------------------------------------------------*/

func (s *state) make_mice_beacon() string {

	var mypos = s.mypos()

	var north byte = 0x30
	if mypos.lat > 0 {
		north = 0x50
	}
	var lonsc byte = 0x30
	if math.Abs(mypos.lon) > 100 {
		lonsc = 0x50
	}
	var west byte = 0x50
	if mypos.lon > 0 {
		west = 0x30
	}

	var ldeg, lmin = math.Modf(math.Abs(mypos.lat))
	lmin *= 60
	var Ldeg, Lmin = math.Modf(math.Abs(mypos.lon))
	Lmin *= 60

	/* Latitude DDMMmm encoded in base-10. */

	var lat = int(ldeg*10000 + lmin*100)

	/* Longitude degrees encoded per APRS spec. */

	var Ld = int(Ldeg)
	var lon_deg byte
	switch {
	case Ld <= 9:
		lon_deg = byte(Ld + 118)
	case Ld <= 99:
		lon_deg = byte(Ld + 28)
	case Ld <= 109:
		lon_deg = byte(Ld + 108)
	case Ld <= 179:
		lon_deg = byte(Ld - 100 + 28)
	}

	/* Minutes and hundredths of a minute encoded per APRS spec. */

	var lon_min, lon_hun = separate_minutes(Lmin)
	if Lmin > 10 {
		lon_min += 28
	} else {
		lon_min += 88
	}
	lon_hun += 28

	/* Speed, hundreds and tens of knots. */

	var spd_htk = byte(int(mypos.speed)/10 + 108)

	/* Units of speed and course hundreds of degrees. */

	var spd_crs = byte(32 + (int(mypos.speed)%10)*10 + int(mypos.course)/100)

	/* Course tens and units of degrees. */

	var crs_tud = byte(int(mypos.course)%100 + 28)

	/* Built byte by byte: the longitude degrees byte can exceed
	 * 0x7F and must go out as a single octet. */

	var dest = []byte{
		get_digit(lat, 5) | 0x50,
		get_digit(lat, 4) | 0x30,
		get_digit(lat, 3) | 0x50,
		get_digit(lat, 2) | north,
		get_digit(lat, 1) | lonsc,
		get_digit(lat, 0) | west,
	}

	var information = []byte{
		'`',
		lon_deg,
		lon_min,
		lon_hun,
		spd_htk,
		spd_crs,
		crs_tud,
		s.conf.icon[1],
		s.conf.icon[0],
	}

	return fmt.Sprintf("%s>%s,%s:%s",
		s.mycall, dest, s.conf.digi_path, information)
}

/*-------------------------------------------------------------------
 *
 * Name:        make_status_beacon
 *
 * Purpose:     Free text status packet with the next comment.
 *
 *-----------------------------------------------------------------*/

func (s *state) make_status_beacon() string {

	var data, err = s.get_comment()
	if err != nil {
		data = "Error"
	}

	return fmt.Sprintf("%s>%s,%s:>%s",
		s.mycall, APRS_TOCALL, s.conf.digi_path, data)
}

/*-------------------------------------------------------------------
 *
 * Name:        make_beacon
 *
 * Purpose:     Plain human readable position beacon.
 *
 * Inputs:	payload		- Data after the position, or empty to
 *				  let choose_data pick.
 *
 * Description:	Course and speed are included only when actually
 *		moving (above 5 knots).
 *
 *-----------------------------------------------------------------*/

func (s *state) make_beacon(payload string) string {

	var mypos = s.mypos()
	var icon = s.conf.icon[1]

	var course_speed = ""
	if mypos.speed > 5 {
		course_speed = fmt.Sprintf("%03.0f/%03.0f", mypos.course, mypos.speed)
	}

	if payload == "" {
		payload = s.choose_data(&icon)
	}

	return fmt.Sprintf("%s>%s,%s:!%s%c%s%c%s%s",
		s.mycall,
		APRS_TOCALL,
		s.conf.digi_path,
		latitude_to_str(mypos.lat, 0),
		s.conf.icon[0],
		longitude_to_str(mypos.lon, 0),
		icon,
		course_speed,
		payload)
}
