package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// TotalTolerance is how far a record's total may drift from quantity * unit price.
var TotalTolerance = decimal.New(1, -6)

// ErrTotalMismatch is returned when total != quantity * unitPrice.
var ErrTotalMismatch = errors.New("total does not match quantity * unit price")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return Date(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("sales: register ymd validation: %v", err))
	}
	return v
}

// saleInput mirrors the fields a clerk fills in for a new sale.
type saleInput struct {
	Date      string          `validate:"required,ymd"`
	Product   string          `validate:"required"`
	Quantity  int             `validate:"gte=0"`
	UnitPrice decimal.Decimal `validate:"gte=0"`
}

// NewSaleRecord builds a record from clerk input, deriving the total from
// quantity and unit price.
func NewSaleRecord(id int, date, product string, quantity int, unitPrice decimal.Decimal) (SaleRecord, error) {
	in := saleInput{
		Date:      date,
		Product:   strings.TrimSpace(product),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := validate.Struct(in); err != nil {
		return SaleRecord{}, fmt.Errorf("invalid sale: %w", err)
	}

	return SaleRecord{
		ID:        id,
		Date:      Date(in.Date),
		Product:   in.Product,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Total:     in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
	}, nil
}

// Validate checks the record's fields and its total. The date shape is not
// checked here: malformed dates are tolerated and excluded at filter time.
func (r SaleRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.UnitPrice.IsNegative() || r.Total.IsNegative() {
		return fmt.Errorf("record %d: negative amount", r.ID)
	}
	return r.checkTotal(TotalTolerance)
}

func (r SaleRecord) checkTotal(tol decimal.Decimal) error {
	want := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
	if r.Total.Sub(want).Abs().GreaterThan(tol) {
		return fmt.Errorf("record %d: %w (%s != %d * %s)", r.ID, ErrTotalMismatch, r.Total, r.Quantity, r.UnitPrice)
	}
	return nil
}

// CheckTotals verifies total == quantity * unitPrice for every record.
func CheckTotals(records []SaleRecord, tol decimal.Decimal) error {
	var errs []error
	for _, r := range records {
		if err := r.checkTotal(tol); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadRecords reads a JSON or YAML record file, chosen by extension, and
// validates every record.
func LoadRecords(path string) ([]SaleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var records []SaleRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	case ".json":
		err = json.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported records file %q: want .json, .yaml or .yml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid record in %s: %w", path, err)
		}
	}
	return records, nil
}

// SampleRecords is the demo ledger the viewer ships with.
func SampleRecords() []SaleRecord {
	return []SaleRecord{
		{ID: 1, Date: "2026-02-28", Product: "Coffee", Quantity: 5, UnitPrice: decimal.RequireFromString("3.50"), Total: decimal.RequireFromString("17.50")},
		{ID: 2, Date: "2026-02-28", Product: "Sandwich", Quantity: 2, UnitPrice: decimal.RequireFromString("7.00"), Total: decimal.RequireFromString("14.00")},
		{ID: 3, Date: "2026-02-27", Product: "T-shirt", Quantity: 3, UnitPrice: decimal.RequireFromString("15.00"), Total: decimal.RequireFromString("45.00")},
		{ID: 4, Date: "2026-02-27", Product: "Cap", Quantity: 1, UnitPrice: decimal.RequireFromString("12.00"), Total: decimal.RequireFromString("12.00")},
		{ID: 5, Date: "2026-02-26", Product: "Coffee", Quantity: 8, UnitPrice: decimal.RequireFromString("3.50"), Total: decimal.RequireFromString("28.00")},
	}
}
