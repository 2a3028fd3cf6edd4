package dantracker

/*------------------------------------------------------------------
 *
 * Purpose:   	Keep the most recently heard stations.
 *
 * Description:	A ring of up to 8 decoded packets with an insertion
 *		cursor.  One entry per source callsign: hearing a
 *		station again merges the old entry into the new packet,
 *		closes the hole, and places the refreshed entry at the
 *		cursor so "most recently heard" is always there while
 *		the rest stays in chronological order.
 *
 *		Our own packets are never stored.  Hearing our own
 *		callsign instead feeds the digipeat quality register.
 *
 *---------------------------------------------------------------*/

const KEEP_PACKETS = 8

/*-------------------------------------------------------------------
 *
 * Name:        find_packet
 *
 * Purpose:     Locate the cache slot holding a given source callsign.
 *
 * Returns:	Slot index or -1.
 *
 *-----------------------------------------------------------------*/

func (s *state) find_packet(fap *aprs_packet_t) int {

	for i := 0; i < KEEP_PACKETS; i++ {
		if s.recent[i] != nil && s.recent[i].src_callsign == fap.src_callsign {
			return i
		}
	}

	return -1
}

/*-------------------------------------------------------------------
 *
 * Name:        merge_packets
 *
 * Purpose:     Fill gaps in a new packet from the previous packet
 *		for the same station.
 *
 * Description:	Each field moves rather than copies: the old entry is
 *		emptied of anything transferred so a second merge from
 *		the same source is a no-op.
 *
 *-----------------------------------------------------------------*/

func merge_packets(newp *aprs_packet_t, oldp *aprs_packet_t) {

	swap_float := func(newv, oldv **float64) {
		if *oldv != nil && *newv == nil {
			*newv = *oldv
			*oldv = nil
		}
	}

	swap_float(&newp.speed, &oldp.speed)
	swap_float(&newp.course, &oldp.course)
	swap_float(&newp.latitude, &oldp.latitude)
	swap_float(&newp.longitude, &oldp.longitude)
	swap_float(&newp.altitude, &oldp.altitude)

	if oldp.symbol_table != 0 && newp.symbol_table == 0 {
		newp.symbol_table = oldp.symbol_table
		oldp.symbol_table = 0
	}
	if oldp.symbol_code != 0 && newp.symbol_code == 0 {
		newp.symbol_code = oldp.symbol_code
		oldp.symbol_code = 0
	}

	if len(oldp.comment) > 0 && len(newp.comment) == 0 {
		newp.comment = oldp.comment
		oldp.comment = nil
	}

	if len(oldp.status) > 0 && len(newp.status) == 0 {
		newp.status = oldp.status
		oldp.status = nil
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        move_packets
 *
 * Purpose:     Close the hole left by a re-heard station.
 *
 * Description:	Free the entry at index and shift everything between
 *		there and the cursor forward by one so the vacancy ends
 *		up at the slot the cursor will advance into.
 *
 *-----------------------------------------------------------------*/

func (s *state) move_packets(index int) {

	var end = (s.recent_idx + 1) % KEEP_PACKETS

	s.recent[index] = nil

	for i := index; i != end; i-- {
		if i == 0 {
			i = KEEP_PACKETS /* Zero now, KEEP-1 next. */
		}
		s.recent[i%KEEP_PACKETS] = s.recent[(i-1)%KEEP_PACKETS]
	}

	/* This made a hole at the bottom. */
	s.recent[end] = nil
}

/*-------------------------------------------------------------------
 *
 * Name:        store_packet
 *
 * Purpose:     Insert a decoded packet into the heard-station cache.
 *
 *-----------------------------------------------------------------*/

func (s *state) store_packet(fap *aprs_packet_t) {

	if fap.src_callsign == s.mycall {
		return /* Don't store our own packets. */
	}

	var i = s.find_packet(fap)
	if i != -1 {
		merge_packets(fap, s.recent[i])
		s.move_packets(i)
	}
	s.recent_idx = (s.recent_idx + 1) % KEEP_PACKETS

	s.recent[s.recent_idx] = fap

	s.update_packets_ui()
}

/*-------------------------------------------------------------------
 *
 * Name:        iterate_recent
 *
 * Purpose:     Stored entries ordered oldest to newest.
 *
 *-----------------------------------------------------------------*/

func (s *state) iterate_recent() []*aprs_packet_t {

	var out []*aprs_packet_t

	for i, j := KEEP_PACKETS, s.recent_idx+1; i > 0; i, j = i-1, j+1 {
		var p = s.recent[j%KEEP_PACKETS]
		if p != nil {
			out = append(out, p)
		}
	}

	return out
}

/*-------------------------------------------------------------------
 *
 * Name:        last_distinct
 *
 * Purpose:     Most recently heard station other than ourselves.
 *
 * Returns:	nil when nothing has been heard yet.
 *
 *-----------------------------------------------------------------*/

func (s *state) last_distinct() *aprs_packet_t {
	return s.recent[s.recent_idx]
}
