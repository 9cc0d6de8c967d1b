package sales

// Filter returns the records whose date falls inside window, bounds inclusive.
// Dates compare as strings, which matches chronological order for the
// fixed-width YYYY-MM-DD form. Records with a malformed date never pass a
// bounded window. The result is always a fresh slice.
func Filter(records []SaleRecord, window DateWindow) []SaleRecord {
	out := make([]SaleRecord, 0, len(records))
	if !window.IsBounded() {
		return append(out, records...)
	}

	for _, r := range records {
		if !r.Date.Valid() {
			continue
		}
		if window.Start != Unbounded && r.Date < window.Start {
			continue
		}
		if window.End != Unbounded && r.Date > window.End {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MalformedDates returns the records whose date is not a valid YYYY-MM-DD
// calendar date, for callers that report data-quality warnings.
func MalformedDates(records []SaleRecord) []SaleRecord {
	var bad []SaleRecord
	for _, r := range records {
		if !r.Date.Valid() {
			bad = append(bad, r)
		}
	}
	return bad
}
