package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Local telemetry: temperature and supply voltage.
 *
 * Description:	The telemetry feed is line oriented, one line of
 *		space separated key=value pairs.  Recognized keys are
 *		temp1 (degrees F) and voltage (volts).  Anything else
 *		gets a warning and is skipped.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type telemetry_t struct {
	temp1   float64
	voltage float64

	last_tel_beacon time.Time
	last_tel        time.Time
}

/*-------------------------------------------------------------------
 *
 * Name:        handle_telemetry
 *
 * Purpose:     Process one line from the telemetry feed and push the
 *		fresh readings to the display.
 *
 *-----------------------------------------------------------------*/

func (s *state) handle_telemetry(line string) {

	line = strings.TrimRight(line, "\r\n")

	for _, pair := range strings.Fields(line) {
		var name, value, found = strings.Cut(pair, "=")
		if !found || name == "" || value == "" {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Invalid telemetry: %s\n", pair)
			return
		}

		switch name {
		case "temp1":
			s.tel.temp1, _ = strconv.ParseFloat(value, 64)
		case "voltage":
			s.tel.voltage, _ = strconv.ParseFloat(value, 64)
		default:
			text_color_set(DW_COLOR_INFO)
			dw_printf("Unknown telemetry value %s\n", name)
		}
	}

	s.ui_send("T_VOLTAGE", fmt.Sprintf("%.1fV", s.tel.voltage))
	s.ui_send("T_TEMP1", fmt.Sprintf("%.0fF", s.tel.temp1))

	s.tel.last_tel = s.now()
}
