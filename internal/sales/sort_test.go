package sales

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSortBy(t *testing.T) {
	records := SampleRecords()

	tests := []struct {
		name string
		spec SortSpec
		want []int
	}{
		{"date asc", SortSpec{SortByDate, Ascending}, []int{5, 3, 4, 1, 2}},
		{"date desc keeps ties in input order", SortSpec{SortByDate, Descending}, []int{1, 2, 3, 4, 5}},
		{"product asc", SortSpec{SortByProduct, Ascending}, []int{4, 1, 5, 2, 3}},
		{"product desc", SortSpec{SortByProduct, Descending}, []int{3, 2, 1, 5, 4}},
		{"quantity asc", SortSpec{SortByQuantity, Ascending}, []int{4, 2, 3, 1, 5}},
		{"unit price desc", SortSpec{SortByUnitPrice, Descending}, []int{3, 4, 2, 1, 5}},
		{"total asc", SortSpec{SortByTotal, Ascending}, []int{4, 2, 1, 5, 3}},
		{"unknown key keeps input order", SortSpec{SortKey("color"), Ascending}, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortBy(records, tt.spec)))
		})
	}
}

func TestSortBy_CaseInsensitiveProduct(t *testing.T) {
	records := []SaleRecord{
		{ID: 1, Product: "banana"},
		{ID: 2, Product: "Apple"},
		{ID: 3, Product: "apple"},
		{ID: 4, Product: "Cherry"},
		{ID: 5, Product: "APPLE"},
	}

	assert.Equal(t, []int{2, 3, 5, 1, 4}, ids(SortBy(records, SortSpec{SortByProduct, Ascending})))
	// Descending reverses the comparison, not the output, so equal names keep their order.
	assert.Equal(t, []int{4, 1, 2, 3, 5}, ids(SortBy(records, SortSpec{SortByProduct, Descending})))
}

func TestSortBy_Stable(t *testing.T) {
	records := SampleRecords()

	// Coffee appears as id 1 then id 5.
	for _, dir := range []Direction{Ascending, Descending} {
		got := ids(SortBy(records, SortSpec{SortByProduct, dir}))
		assert.Less(t, indexOf(got, 1), indexOf(got, 5), "direction %s", dir)
	}
}

func TestSortBy_Idempotent(t *testing.T) {
	keys := []SortKey{SortByDate, SortByProduct, SortByQuantity, SortByUnitPrice, SortByTotal}
	for _, key := range keys {
		for _, dir := range []Direction{Ascending, Descending} {
			spec := SortSpec{key, dir}
			once := SortBy(SampleRecords(), spec)
			twice := SortBy(once, spec)
			assert.Equal(t, once, twice, "%+v", spec)
		}
	}
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	records := SampleRecords()
	before := ids(records)

	_ = SortBy(records, SortSpec{SortByTotal, Descending})

	assert.Equal(t, before, ids(records))
}

func TestSortBy_DecimalPrecision(t *testing.T) {
	records := []SaleRecord{
		{ID: 1, UnitPrice: decimal.RequireFromString("0.30")},
		{ID: 2, UnitPrice: decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))},
		{ID: 3, UnitPrice: decimal.RequireFromString("0.29")},
	}

	assert.Equal(t, []int{3, 1, 2}, ids(SortBy(records, SortSpec{SortByUnitPrice, Ascending})))
}

func TestNextSortSpec(t *testing.T) {
	tests := []struct {
		name      string
		current   SortSpec
		requested SortKey
		want      SortSpec
	}{
		{"same key asc flips to desc", SortSpec{SortByDate, Ascending}, SortByDate, SortSpec{SortByDate, Descending}},
		{"same key desc flips to asc", SortSpec{SortByDate, Descending}, SortByDate, SortSpec{SortByDate, Ascending}},
		{"new key resets to asc", SortSpec{SortByDate, Ascending}, SortByProduct, SortSpec{SortByProduct, Ascending}},
		{"new key from desc resets to asc", SortSpec{SortByDate, Descending}, SortByTotal, SortSpec{SortByTotal, Ascending}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSortSpec(tt.current, tt.requested))
		})
	}
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("desc"))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection("bogus"))
	assert.Equal(t, Ascending, ParseDirection(""))
}
