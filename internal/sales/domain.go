package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical calendar-date form used by sale records.
const DateLayout = "2006-01-02"

// Date is a calendar date in canonical YYYY-MM-DD form. The empty Date is used
// as the unbounded side of a DateWindow.
type Date string

// Unbounded marks an open side of a DateWindow.
const Unbounded Date = ""

// DateOf formats t in its own location, without any timezone conversion.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate parses s strictly as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	d := Date(s)
	if !d.Valid() {
		return Unbounded, ErrMalformedDate
	}
	return d, nil
}

// Valid reports whether d has the fixed-width YYYY-MM-DD shape and names a
// real calendar day.
func (d Date) Valid() bool {
	if len(d) != len(DateLayout) || d[4] != '-' || d[7] != '-' {
		return false
	}
	for i := 0; i < len(d); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if d[i] < '0' || d[i] > '9' {
			return false
		}
	}
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

func (d Date) String() string {
	return string(d)
}

// SaleRecord represents one transaction line in the ledger.
type SaleRecord struct {
	ID        int             `json:"id" yaml:"id" validate:"required,gt=0"`
	Date      Date            `json:"date" yaml:"date" validate:"required"`
	Product   string          `json:"product" yaml:"product" validate:"required"`
	Quantity  int             `json:"quantity" yaml:"quantity" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" yaml:"unitPrice"`
	Total     decimal.Decimal `json:"total" yaml:"total"`
}

// DateWindow is an inclusive range of calendar dates. Either side may be
// Unbounded. An inverted window is allowed and matches nothing.
type DateWindow struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// IsBounded reports whether at least one side of the window is set.
func (w DateWindow) IsBounded() bool {
	return w.Start != Unbounded || w.End != Unbounded
}

// SortKey names the record field a view is ordered by.
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByProduct   SortKey = "product"
	SortByQuantity  SortKey = "quantity"
	SortByUnitPrice SortKey = "unitPrice"
	SortByTotal     SortKey = "total"
)

// Valid reports whether k is one of the sortable columns.
func (k SortKey) Valid() bool {
	switch k {
	case SortByDate, SortByProduct, SortByQuantity, SortByUnitPrice, SortByTotal:
		return true
	}
	return false
}

// Direction is the sort direction of a view.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps anything other than "desc" to Ascending.
func ParseDirection(s string) Direction {
	if Direction(s) == Descending {
		return Descending
	}
	return Ascending
}

// SortSpec couples a sort key with a direction.
type SortSpec struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// DefaultSortSpec is the ordering a freshly opened view starts with: newest first.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortByDate, Direction: Descending}
}

// SummaryStats holds the aggregate cards shown above the table. Values are
// kept at full precision; use Rounded for display.
type SummaryStats struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalUnits    int             `json:"totalUnits"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// View is the rendered result of one query over the ledger.
type View struct {
	Records       []SaleRecord `json:"results"`
	Summary       SummaryStats `json:"summary"`
	FilteredCount int          `json:"filtered"`
	TotalCount    int          `json:"total"`
	Window        DateWindow   `json:"window"`
	Sort          SortSpec     `json:"sort"`
}
