package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(records []SaleRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	records := SampleRecords()

	tests := []struct {
		name   string
		window DateWindow
		want   []int
	}{
		{"unbounded returns all", DateWindow{}, []int{1, 2, 3, 4, 5}},
		{"open end", DateWindow{Start: "2026-02-27"}, []int{1, 2, 3, 4}},
		{"open start", DateWindow{End: "2026-02-27"}, []int{3, 4, 5}},
		{"bounded inclusive", DateWindow{Start: "2026-02-27", End: "2026-02-27"}, []int{3, 4}},
		{"bounds equal to first and last", DateWindow{Start: "2026-02-26", End: "2026-02-28"}, []int{1, 2, 3, 4, 5}},
		{"inverted window is empty", DateWindow{Start: "2026-02-28", End: "2026-02-26"}, []int{}},
		{"window outside data", DateWindow{Start: "2027-01-01"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(records, tt.window)))
		})
	}
}

func TestFilter_MatchesBoundChecks(t *testing.T) {
	records := SampleRecords()
	dates := []Date{Unbounded, "2026-02-25", "2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01"}

	for _, start := range dates {
		for _, end := range dates {
			w := DateWindow{Start: start, End: end}
			got := map[int]bool{}
			for _, r := range Filter(records, w) {
				got[r.ID] = true
			}
			for _, r := range records {
				want := (start == Unbounded || r.Date >= start) && (end == Unbounded || r.Date <= end)
				assert.Equal(t, want, got[r.ID], "record %d in window %+v", r.ID, w)
			}
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	records := SampleRecords()

	out := Filter(records, DateWindow{})
	require.Len(t, out, len(records))
	out[0].Product = "changed"

	assert.Equal(t, "Coffee", records[0].Product)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil, DateWindow{Start: "2026-01-01"}))
	assert.NotNil(t, Filter(nil, DateWindow{}))
}

func TestFilter_MalformedDates(t *testing.T) {
	records := append(SampleRecords(),
		SaleRecord{ID: 6, Date: "2026-2-27", Product: "Tea", Quantity: 1},
		SaleRecord{ID: 7, Date: "garbage", Product: "Tea", Quantity: 1},
		SaleRecord{ID: 8, Date: "2026-02-30", Product: "Tea", Quantity: 1},
	)

	// Unbounded keeps everything, bad rows included.
	assert.Len(t, Filter(records, DateWindow{}), 8)

	// Any bound excludes them, even one that would match lexically.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Filter(records, DateWindow{Start: "2000-01-01"})))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(Filter(records, DateWindow{End: "2999-12-31"})))

	assert.Equal(t, []int{6, 7, 8}, ids(MalformedDates(records)))
}

func TestDate_Valid(t *testing.T) {
	valid := []Date{"2026-02-28", "2024-02-29", "0001-01-01"}
	invalid := []Date{"", "2026-2-28", "2026/02/28", "2026-02-28T00:00", "2026-13-01", "2025-02-29", "20260228xx", "２０２６-02-28"}

	for _, d := range valid {
		assert.True(t, d.Valid(), "%q", d)
	}
	for _, d := range invalid {
		assert.False(t, d.Valid(), "%q", d)
	}

	_, err := ParseDate("2026-02-31")
	assert.ErrorIs(t, err, ErrMalformedDate)
}
