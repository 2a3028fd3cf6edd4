package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Process NMEA sentences from the GPS receiver and keep
 *		a short history of position fixes.
 *
 * Description:	A GPS fix is assembled from two different sentence
 *		types.  $GPGGA supplies fix quality, satellite count
 *		and altitude.  $GPRMC supplies time, date, speed and
 *		course.  $GPRMC rotates to a fresh ring slot so the
 *		following $GPGGA contributes to the same logical fix.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const KEEP_POSITS = 4

/*
 * One position fix.  Altitude is feet, speed is knots, course is
 * degrees true.  tstamp/dstamp are packed base-10 HHMMSS / DDMMYY.
 */

type posit struct {
	lat    float64
	lon    float64
	alt    float64
	speed  float64
	course float64

	qual int /* 0 = invalid, >= 1 = locked. */
	sats int

	tstamp int
	dstamp int
}

/* Most recent fix.  Only the active slot is ever read by consumers. */

func (s *state) mypos() *posit {
	return &s.positions[s.mypos_idx]
}

func (s *state) rotate_pos() {
	s.mypos_idx = (s.mypos_idx + 1) % KEEP_POSITS
}

/*-------------------------------------------------------------------
 *
 * Name:	remove_checksum
 *
 * Purpose:	Validate checksum and remove before further processing.
 *
 * Inputs:	sent		NMEA sentence.
 *		quiet		suppress printing of error messages.
 *
 * Returns:	Sentence without checksum, or error if missing or wrong.
 *
 *--------------------------------------------------------------------*/

func remove_checksum(sent string, quiet bool) (string, error) {

	var msg, checksumStr, found = strings.Cut(sent, "*")
	if !found {
		var errorMsg = "Missing GPS checksum"
		if !quiet {
			text_color_set(DW_COLOR_INFO)
			dw_printf("%s.\n", errorMsg)
		}
		return "", errors.New(errorMsg)
	}

	var calculatedChecksum int64
	for _, r := range msg[1:] {
		calculatedChecksum ^= int64(r)
	}

	var checksum, _ = strconv.ParseInt(checksumStr, 16, 0)

	if calculatedChecksum != checksum {
		var errorMsg = fmt.Sprintf("GPS checksum error. Expected %02x but found %s", calculatedChecksum, checksumStr)
		if !quiet {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("%s.\n", errorMsg)
		}
		return "", errors.New(errorMsg)
	}

	return msg, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        parse_gga
 *
 * Purpose:    	Parse $GPGGA sentence into the active fix.
 *
 * Inputs:	sentence	NMEA sentence with checksum already removed.
 *
 * Outputs:	mypos		Latitude, longitude, fix quality,
 *				satellite count, altitude, time of day.
 *
 * Returns:	true when the sentence has a fix quality field.  A
 *		quality of 0 still returns true; position and altitude
 *		are then left unchanged.
 *
 * Example:	$GPGGA,003518.710,4237.1250,N,07120.8327,W,1,03,5.9,33.5,M,-33.5,M,,0000
 *
 *--------------------------------------------------------------------*/

func parse_gga(mypos *posit, sentence string) bool {

	ptype, sentence, _ := strings.Cut(sentence, ",")     /* Should be $GPGGA */
	ptime, sentence, _ := strings.Cut(sentence, ",")     /* Time, hhmmss[.sss] */
	plat, sentence, _ := strings.Cut(sentence, ",")      /* Latitude */
	pns, sentence, _ := strings.Cut(sentence, ",")       /* North/South */
	plon, sentence, _ := strings.Cut(sentence, ",")      /* Longitude */
	pew, sentence, _ := strings.Cut(sentence, ",")       /* East/West */
	pfix, sentence, _ := strings.Cut(sentence, ",")      /* 0=invalid, 1=GPS fix, 2=DGPS fix */
	pnum_sat, sentence, _ := strings.Cut(sentence, ",")  /* Number of satellites */
	_, sentence, _ = strings.Cut(sentence, ",")          /* Horiz. Dilution of Precision */
	paltitude, sentence, _ := strings.Cut(sentence, ",") /* Altitude, meters, above mean sea level */

	_ = ptype
	_ = sentence

	if len(pfix) == 0 {
		return false
	}
	mypos.qual, _ = strconv.Atoi(pfix)
	mypos.sats, _ = strconv.Atoi(pnum_sat)

	if len(ptime) >= 6 {
		mypos.tstamp, _ = strconv.Atoi(ptime[:6])
	}

	if mypos.qual == 0 {
		/* No fix.  Don't trust the rest. */
		return true
	}

	if len(plat) > 0 && len(pns) > 0 {
		mypos.lat = latitude_from_nmea(plat, pns[0])
	}
	if len(plon) > 0 && len(pew) > 0 {
		mypos.lon = longitude_from_nmea(plon, pew[0])
	}

	if len(paltitude) > 0 {
		var alt_m, _ = strconv.ParseFloat(paltitude, 64)
		mypos.alt = M_TO_FT(alt_m)
	}

	return true
}

/*-------------------------------------------------------------------
 *
 * Name:        parse_rmc
 *
 * Purpose:    	Parse $GPRMC sentence into the active fix.
 *
 * Inputs:	sentence	NMEA sentence with checksum already removed.
 *
 * Outputs:	mypos		Latitude, longitude, speed, course,
 *				time of day, date.
 *
 * Returns:	true when the sentence contributed position data.
 *
 * Example:	$GPRMC,003413.710,A,4237.1240,N,07120.8333,W,5.07,291.42,160614,,,A
 *
 *--------------------------------------------------------------------*/

func parse_rmc(mypos *posit, sentence string) bool {

	ptype, sentence, _ := strings.Cut(sentence, ",")   /* Should be $GPRMC */
	ptime, sentence, _ := strings.Cut(sentence, ",")   /* Time, hhmmss[.sss] */
	pstatus, sentence, _ := strings.Cut(sentence, ",") /* Status, A=Active, V=Void */
	plat, sentence, _ := strings.Cut(sentence, ",")    /* Latitude */
	pns, sentence, _ := strings.Cut(sentence, ",")     /* North/South */
	plon, sentence, _ := strings.Cut(sentence, ",")    /* Longitude */
	pew, sentence, _ := strings.Cut(sentence, ",")     /* East/West */
	pknots, sentence, _ := strings.Cut(sentence, ",")  /* Speed over ground, knots. */
	pcourse, sentence, _ := strings.Cut(sentence, ",") /* True course, degrees. */
	pdate, sentence, _ := strings.Cut(sentence, ",")   /* Date, ddmmyy */

	_ = ptype
	_ = sentence

	if len(ptime) >= 6 {
		mypos.tstamp, _ = strconv.Atoi(ptime[:6])
	}
	if len(pdate) >= 6 {
		mypos.dstamp, _ = strconv.Atoi(pdate[:6])
	}

	if pstatus != "A" {
		return false /* Not "Active." Don't trust the movement data. */
	}

	if len(plat) > 0 && len(pns) > 0 {
		mypos.lat = latitude_from_nmea(plat, pns[0])
	}
	if len(plon) > 0 && len(pew) > 0 {
		mypos.lon = longitude_from_nmea(plon, pew[0])
	}

	if len(pknots) > 0 {
		mypos.speed, _ = strconv.ParseFloat(pknots, 64)
	}

	if len(pcourse) > 0 {
		mypos.course, _ = strconv.ParseFloat(pcourse, 64)
	} else {
		/* When stationary, this field might be empty. */
		mypos.course = 0
	}

	return true
}

/*-------------------------------------------------------------------
 *
 * Name:        parse_gps_string
 *
 * Purpose:    	Process one complete sentence from the GPS receiver.
 *
 * Description:	Invalid checksum or unrecognized sentence types are
 *		dropped without any state change.  $GPRMC rotates the
 *		position ring so the next $GPGGA writes a fresh slot.
 *
 * Returns:	What parse_gga or parse_rmc returns; false for a bad
 *		checksum or any other sentence type.
 *
 *--------------------------------------------------------------------*/

func (s *state) parse_gps_string(str string) bool {

	str = strings.TrimPrefix(str, "\n")

	str, err := remove_checksum(str, !s.conf.verbose)
	if err != nil {
		return false
	}

	if strings.HasPrefix(str, "$GPGGA") || strings.HasPrefix(str, "$GNGGA") {
		return parse_gga(s.mypos(), str)
	} else if strings.HasPrefix(str, "$GPRMC") || strings.HasPrefix(str, "$GNRMC") {
		s.rotate_pos()
		return parse_rmc(s.mypos(), str)
	}

	return false
}
