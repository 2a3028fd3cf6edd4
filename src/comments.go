package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Rotate through the configured beacon comments and
 *		expand $name$ substitutions.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

/*-------------------------------------------------------------------
 *
 * Name:        get_subst
 *
 * Purpose:     Expansion value for one substitution key.
 *
 * Description:	Unknown keys expand to nothing, with a warning, so a
 *		typo in the config degrades the comment rather than
 *		suppressing the beacon.
 *
 *-----------------------------------------------------------------*/

func (s *state) get_subst(key string) string {

	switch key {
	case "index":
		if len(s.conf.comments) == 0 {
			return "0"
		}
		var i = s.comment_idx % len(s.conf.comments)
		s.comment_idx++
		return fmt.Sprintf("%d", i)
	case "mycall":
		return s.mycall
	case "temp1":
		return fmt.Sprintf("%.0f", s.tel.temp1)
	case "voltage":
		return fmt.Sprintf("%.1f", s.tel.voltage)
	case "sats":
		return fmt.Sprintf("%d", s.mypos().sats)
	case "ver":
		return version_string()
	case "time":
		var v, _ = strftime.Format("%H:%M:%S", time.Now())
		return v
	case "date":
		var v, _ = strftime.Format("%m/%d/%Y", time.Now())
		return v
	}

	text_color_set(DW_COLOR_ERROR)
	dw_printf("Unknown substitution `%s'\n", key)
	return ""
}

/*-------------------------------------------------------------------
 *
 * Name:        process_subst
 *
 * Purpose:     Expand every $name$ placeholder in a comment template.
 *
 * Inputs:	src	- Template text.
 *
 * Returns:	Expanded text, or an error for an unterminated
 *		placeholder.  The caller substitutes "Error" so a
 *		beacon still goes out.
 *
 *-----------------------------------------------------------------*/

func (s *state) process_subst(src string) (string, error) {

	var str strings.Builder

	for len(src) > 0 {
		var before, after, found = strings.Cut(src, "$")
		str.WriteString(before)
		if !found {
			break /* No more substs. */
		}

		name, rest, closed := strings.Cut(after, "$")
		if !closed {
			text_color_set(DW_COLOR_ERROR)
			dw_printf("Bad substitution `%s'\n", after)
			return "", fmt.Errorf("unterminated substitution `%s'", after)
		}

		str.WriteString(s.get_subst(name))
		src = rest
	}

	return str.String(), nil
}

/*-------------------------------------------------------------------
 *
 * Name:        get_comment
 *
 * Purpose:     Next comment in the round robin, fully expanded.
 *
 *-----------------------------------------------------------------*/

func (s *state) get_comment() (string, error) {

	if len(s.conf.comments) == 0 {
		return "", nil
	}

	var cmt = s.comment_idx % len(s.conf.comments)
	s.comment_idx++

	return s.process_subst(s.conf.comments[cmt])
}
