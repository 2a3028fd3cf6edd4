package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Various functions for dealing with latitude and longitude.
 *
 * References:	APRS Protocol Reference.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

/* Value for unknown or not set. */

const G_UNKNOWN = -999999.

const earth_radius_km = 6371.0088

/*------------------------------------------------------------------
 *
 * Name:        latitude_to_str
 *
 * Purpose:     Convert numeric latitude to string for transmission.
 *
 * Inputs:      dlat		- Floating point degrees.
 * 		ambiguity	- If 1, 2, 3, or 4, blank out that many trailing digits.
 *
 * Returns:	String in format ddmm.mm[NS].
 *		Must always be exactly 8 characters.
 *		Put in leading zeros if necessary.
 *		The APRS position report has fixed width fields.
 *
 *----------------------------------------------------------------*/

func latitude_to_str(dlat float64, ambiguity int) string {

	if dlat < -90. {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Latitude is less than -90.  Changing to -90.\n")
		dlat = -90.
	}
	if dlat > 90. {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Latitude is greater than 90.  Changing to 90.\n")
		dlat = 90.
	}

	var hemi rune /* Hemisphere: N or S */
	if dlat < 0 {
		dlat = (-dlat)
		hemi = 'S'
	} else {
		hemi = 'N'
	}

	var ideg = int(dlat)                    /* whole number of degrees. */
	var dmin = (dlat - float64(ideg)) * 60. /* Minutes after removing degrees. */

	// Minutes must be exactly like 99.99 with leading zeros,
	// if needed, to make it fixed width.

	var smin = fmt.Sprintf("%05.2f", dmin)
	/* Due to roundoff, 59.9999 could come out as "60.00" */
	if smin[0] == '6' {
		smin = "00.00"
		ideg++
	}

	var slat = []byte(fmt.Sprintf("%02d%s%c", ideg, smin, hemi))

	if ambiguity >= 1 {
		slat[6] = ' '
		if ambiguity >= 2 {
			slat[5] = ' '
			if ambiguity >= 3 {
				slat[3] = ' '
				if ambiguity >= 4 {
					slat[2] = ' '
				}
			}
		}
	}

	return string(slat)
}

/*------------------------------------------------------------------
 *
 * Name:        longitude_to_str
 *
 * Purpose:     Convert numeric longitude to string for transmission.
 *
 * Inputs:      dlong		- Floating point degrees.
 * 		ambiguity	- If 1, 2, 3, or 4, blank out that many trailing digits.
 *
 * Returns:	String in format dddmm.mm[EW].
 *		Must always be exactly 9 characters.
 *
 *----------------------------------------------------------------*/

func longitude_to_str(dlong float64, ambiguity int) string {

	if dlong < -180. {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Longitude is less than -180.  Changing to -180.\n")
		dlong = -180.
	}
	if dlong > 180. {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Longitude is greater than 180.  Changing to 180.\n")
		dlong = 180.
	}

	var hemi rune /* Hemisphere: E or W */
	if dlong < 0 {
		dlong = (-dlong)
		hemi = 'W'
	} else {
		hemi = 'E'
	}

	var ideg = int(dlong)                    /* whole number of degrees. */
	var dmin = (dlong - float64(ideg)) * 60. /* Minutes after removing degrees. */

	var smin = fmt.Sprintf("%05.2f", dmin)
	/* Due to roundoff, 59.9999 could come out as "60.00" */
	if smin[0] == '6' {
		smin = "00.00"
		ideg++
	}

	// Degrees must be exactly 3 digits, with leading zero, if needed.

	var slong = []byte(fmt.Sprintf("%03d%s%c", ideg, smin, hemi))

	/*
	 * The spec says position ambiguity in latitude also
	 * applies to longitude automatically.
	 */
	if ambiguity >= 1 {
		slong[7] = ' '
		if ambiguity >= 2 {
			slong[6] = ' '
			if ambiguity >= 3 {
				slong[4] = ' '
				if ambiguity >= 4 {
					slong[3] = ' '
				}
			}
		}
	}

	return string(slong)
}

/*------------------------------------------------------------------
 *
 * Name:        latitude_from_nmea
 *
 * Purpose:     Convert NMEA latitude encoding to degrees.
 *
 * Inputs:	pstr 	- Pointer to numeric string.
 *		phemi	- 'N' or 'S'.
 *
 * Returns:	Double precision value in degrees.  Negative for South.
 *		G_UNKNOWN for error.
 *
 *----------------------------------------------------------------*/

func latitude_from_nmea(pstr string, phemi byte) float64 {

	if len(pstr) < 5 {
		return (G_UNKNOWN)
	}
	if !unicode.IsDigit(rune(pstr[0])) {
		return (G_UNKNOWN)
	}

	if pstr[4] != '.' {
		return (G_UNKNOWN)
	}

	var lat = float64(pstr[0]-'0')*10 + float64(pstr[1]-'0')
	var mins, _ = strconv.ParseFloat(pstr[2:], 64)
	lat += mins / 60.0

	if lat < 0 || lat > 90 {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Error: Latitude not in range of 0 to 90.\n")
	}

	if phemi != 'N' && phemi != 'S' && phemi != 0 {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Error: Latitude hemisphere should be N or S.\n")
	}

	if phemi == 'S' {
		lat = (-lat)
	}

	return (lat)
}

/*------------------------------------------------------------------
 *
 * Name:        longitude_from_nmea
 *
 * Purpose:     Convert NMEA longitude encoding to degrees.
 *
 * Inputs:	pstr 	- Pointer to numeric string.
 *		phemi	- 'E' or 'W'.
 *
 * Returns:	Double precision value in degrees.  Negative for West.
 *		G_UNKNOWN for error.
 *
 *----------------------------------------------------------------*/

func longitude_from_nmea(pstr string, phemi byte) float64 {

	if len(pstr) < 6 {
		return (G_UNKNOWN)
	}
	if !unicode.IsDigit(rune(pstr[0])) {
		return (G_UNKNOWN)
	}

	if pstr[5] != '.' {
		return (G_UNKNOWN)
	}

	var lon = float64(pstr[0]-'0')*100 + float64(pstr[1]-'0')*10 + float64(pstr[2]-'0')
	var mins, _ = strconv.ParseFloat(pstr[3:], 64)
	lon += mins / 60.0

	if lon < 0 || lon > 180 {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Error: Longitude not in range of 0 to 180.\n")
	}

	if phemi != 'E' && phemi != 'W' && phemi != 0 {
		text_color_set(DW_COLOR_ERROR)
		dw_printf("Error: Longitude hemisphere should be E or W.\n")
	}

	if phemi == 'W' {
		lon = (-lon)
	}

	return (lon)
}

/*------------------------------------------------------------------
 *
 * Name:        ll_distance_miles
 *
 * Purpose:     Great circle distance between two locations.
 *
 * Inputs:	lat1, lon1, lat2, lon2 in degrees.
 *
 * Returns:	Distance in statute miles.
 *
 *----------------------------------------------------------------*/

func ll_distance_miles(lat1, lon1, lat2, lon2 float64) float64 {

	var a = s2.LatLngFromDegrees(lat1, lon1)
	var b = s2.LatLngFromDegrees(lat2, lon2)

	var km = a.Distance(b).Radians() * earth_radius_km

	return KPH_TO_MPH(km)
}

/*------------------------------------------------------------------
 *
 * Name:        ll_bearing_deg
 *
 * Purpose:     Initial bearing from one location toward another.
 *
 * Inputs:	lat1, lon1, lat2, lon2 in degrees.
 *
 * Returns:	Bearing in degrees, 0 - 360.
 *
 *----------------------------------------------------------------*/

func ll_bearing_deg(lat1, lon1, lat2, lon2 float64) float64 {

	var p1 = (s1.Angle(lat1) * s1.Degree).Radians()
	var p2 = (s1.Angle(lat2) * s1.Degree).Radians()
	var dl = (s1.Angle(lon2-lon1) * s1.Degree).Radians()

	var y = math.Sin(dl) * math.Cos(p2)
	var x = math.Cos(p1)*math.Sin(p2) - math.Sin(p1)*math.Cos(p2)*math.Cos(dl)

	var b = math.Atan2(y, x) * 180 / math.Pi
	if b < 0 {
		b += 360
	}

	return b
}
