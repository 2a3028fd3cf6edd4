package dantracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTNC2RoundTrip: monitor text to frame and back.
func TestTNC2RoundTrip(t *testing.T) {
	tests := []string{
		"N0CAL-7>APZDMS,WIDE1-1:!3707.41N/12232.59W>hi",
		"N0CAL-7>APZDMS:>status text",
		"K1ABC>APRS,WIDE1-1,WIDE2-1*:payload with spaces",
		"W1AW-5>T5PPPP,WIDE2-1:`0X data",
	}

	for _, monitor := range tests {
		t.Run(monitor, func(t *testing.T) {
			var frame, err = tnc2_to_ax25(monitor)
			require.NoError(t, err)

			var back, err2 = ax25_to_tnc2(frame)
			require.NoError(t, err2)

			assert.Equal(t, monitor, back)
		})
	}
}

// TestTNC2ToAX25Addresses: the shifted address layout.
func TestTNC2ToAX25Addresses(t *testing.T) {
	var frame, err = tnc2_to_ax25("N0CAL-7>APZDMS:x")
	require.NoError(t, err)

	// Destination first: 'A' << 1 = 0x82.
	assert.EqualValues(t, 'A'<<1, frame[0])
	assert.EqualValues(t, 'P'<<1, frame[1])

	// Source SSID byte: RR bits, SSID 7, last-address flag.
	assert.EqualValues(t, SSID_RR_MASK|7<<SSID_SSID_SHIFT|SSID_LAST_MASK, frame[13])

	// Control and PID for an APRS UI frame.
	assert.EqualValues(t, AX25_UI_FRAME, frame[14])
	assert.EqualValues(t, AX25_PID_NO_LAYER_3, frame[15])

	assert.Equal(t, "x", string(frame[16:]))
}

// TestTNC2UsedDigipeater: the H bit survives the round trip.
func TestTNC2UsedDigipeater(t *testing.T) {
	var frame, err = tnc2_to_ax25("K1ABC>APRS,W1XYZ*:x")
	require.NoError(t, err)

	// Digipeater is the third address.
	assert.NotZero(t, frame[20]&SSID_H_MASK)
}

// TestTNC2Malformed are all rejected, never panics.
func TestTNC2Malformed(t *testing.T) {
	tests := []string{
		"",
		"no colon here",
		"noheader:info",
		"SRC>:info",
		"TOOLONGCALL>APRS:info",
		"SRC>DST-77:info",
	}

	for _, monitor := range tests {
		t.Run(monitor, func(t *testing.T) {
			var _, err = tnc2_to_ax25(monitor)
			assert.Error(t, err)
		})
	}
}

// TestKissTNC2Glue: the full path to the TNC and back.
func TestKissTNC2Glue(t *testing.T) {
	var monitor = "N0CAL-7>APZDMS,WIDE1-1:!3707.41N/12232.59W>hi"

	var kiss, err = tnc2_to_kiss(monitor)
	require.NoError(t, err)

	assert.EqualValues(t, FEND, kiss[0])
	assert.EqualValues(t, FEND, kiss[len(kiss)-1])

	var back, err2 = kiss_to_tnc2(kiss)
	require.NoError(t, err2)
	assert.Equal(t, monitor, back)
}

// TestAX25ToTNC2Garbage: short or non-UI frames are errors.
func TestAX25ToTNC2Garbage(t *testing.T) {
	var _, err = ax25_to_tnc2([]byte{1, 2, 3})
	assert.Error(t, err)

	// Addresses that never terminate.
	var _, err2 = ax25_to_tnc2(make([]byte, 80))
	assert.Error(t, err2)
}
