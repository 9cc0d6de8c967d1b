package sales

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"
)

// SortBy returns a copy of records ordered by spec. The sort is stable, so
// records with equal keys keep their input order in both directions. Product
// names compare case-insensitively. An unknown key leaves the order as is.
func SortBy(records []SaleRecord, spec SortSpec) []SaleRecord {
	out := make([]SaleRecord, 0, len(records))
	out = append(out, records...)

	compare := comparator(spec.Key, out)
	if compare == nil {
		return out
	}
	if spec.Direction == Descending {
		asc := compare
		compare = func(a, b SaleRecord) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

func comparator(key SortKey, records []SaleRecord) func(a, b SaleRecord) int {
	switch key {
	case SortByDate:
		return func(a, b SaleRecord) int { return cmp.Compare(a.Date, b.Date) }
	case SortByProduct:
		folded := foldProducts(records)
		return func(a, b SaleRecord) int { return cmp.Compare(folded[a.Product], folded[b.Product]) }
	case SortByQuantity:
		return func(a, b SaleRecord) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByUnitPrice:
		return func(a, b SaleRecord) int { return a.UnitPrice.Cmp(b.UnitPrice) }
	case SortByTotal:
		return func(a, b SaleRecord) int { return a.Total.Cmp(b.Total) }
	}
	return nil
}

// foldProducts case-folds every distinct product name once up front.
func foldProducts(records []SaleRecord) map[string]string {
	caser := cases.Fold()
	folded := make(map[string]string, len(records))
	for _, r := range records {
		if _, ok := folded[r.Product]; !ok {
			folded[r.Product] = caser.String(r.Product)
		}
	}
	return folded
}

// NextSortSpec is the column-header toggle: requesting the active key flips
// its direction, requesting another key switches to it ascending.
func NextSortSpec(current SortSpec, requested SortKey) SortSpec {
	if current.Key == requested {
		if current.Direction == Ascending {
			return SortSpec{Key: requested, Direction: Descending}
		}
		return SortSpec{Key: requested, Direction: Ascending}
	}
	return SortSpec{Key: requested, Direction: Ascending}
}
