package dantracker

// A lightweight take on Dire Wolf's textcolor.c

import (
	"fmt"
	"os"
)

type dw_color_e int

const (
	DW_COLOR_INFO    dw_color_e = iota /* black */
	DW_COLOR_ERROR                     /* red */
	DW_COLOR_REC                       /* green */
	DW_COLOR_XMIT                      /* magenta */
	DW_COLOR_DEBUG                     /* dark_green */
)

var ansi_codes = map[dw_color_e]string{
	DW_COLOR_INFO:  "\x1b[0m",
	DW_COLOR_ERROR: "\x1b[1;31m",
	DW_COLOR_REC:   "\x1b[32m",
	DW_COLOR_XMIT:  "\x1b[35m",
	DW_COLOR_DEBUG: "\x1b[2;32m",
}

var _text_color_level int

func text_color_init(level int) {
	_text_color_level = level
}

func text_color_set(c dw_color_e) {
	if _text_color_level == 0 {
		return
	}

	fmt.Fprint(os.Stdout, ansi_codes[c])
}

func dw_printf(format string, a ...any) (int, error) {
	return fmt.Printf(format, a...)
}
