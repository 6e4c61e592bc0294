package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/watermelon/decision-engine/internal/domain/model"
	"github.com/watermelon/decision-engine/internal/domain/port"
	"github.com/watermelon/decision-engine/internal/domain/valueobject"
)

// Defaults substituted in default-fill mode.
const (
	DefaultHistoricalAverage = 100.0
	DefaultRecencyWindow     = 90 * 24 * time.Hour

	minPlaceholderAmount = 5000.0
	maxPlaceholderAmount = 50000.0
	minPlaceholderSuffix = 1000
	maxPlaceholderSuffix = 9999
)

// SupplierInput is a raw invoice as received. Fields hold whatever scalar
// the caller sent; nil means absent.
type SupplierInput struct {
	SupplierName any
	Amount       any
	Terms        any
}

// BuyerInput is a raw buyer activity record.
type BuyerInput struct {
	ID             any
	Name           any
	LastOrderDate  any
	OrderFrequency any
	BasketSize     any
}

// ProductInput is a raw inventory snapshot.
type ProductInput struct {
	ProductID        any
	HistoricalAvg    any
	CurrentInventory any
}

// SupplierApplication is a normalized invoice.
type SupplierApplication struct {
	Name   string
	Amount decimal.Decimal
	Terms  valueobject.ContractTerms
}

// BuyerActivity is a normalized buyer record.
type BuyerActivity struct {
	LastOrderAt    time.Time
	ID             string
	Name           string
	BasketSize     decimal.Decimal
	OrderFrequency int
}

// InventorySnapshot is a normalized product record.
type InventorySnapshot struct {
	ProductID         string
	HistoricalAverage float64
	CurrentInventory  int
}

// Extractor normalizes raw inputs field by field. In default-fill mode a
// missing or malformed field is replaced by its default and the rest of the
// input is kept; in strict mode such numeric and temporal fields produce a
// *model.ValidationError. Identifiers are required in both modes.
type Extractor struct {
	rng   port.RandomSource
	clock port.Clock
	mode  valueobject.ValidationMode
}

// NewExtractor creates an Extractor. A zero mode means default-fill.
func NewExtractor(mode valueobject.ValidationMode, rng port.RandomSource, clock port.Clock) *Extractor {
	if mode.IsZero() {
		mode = valueobject.ValidationDefaultFill
	}
	return &Extractor{mode: mode, rng: rng, clock: clock}
}

// Mode returns the validation mode in effect.
func (e *Extractor) Mode() valueobject.ValidationMode {
	return e.mode
}

// Supplier normalizes an invoice.
func (e *Extractor) Supplier(in SupplierInput) (SupplierApplication, error) {
	var errs []error
	app := SupplierApplication{}

	name, err := stringField(in.SupplierName)
	if err != nil {
		name = fmt.Sprintf("Supplier_%d", e.rng.IntRange(minPlaceholderSuffix, maxPlaceholderSuffix))
	}
	app.Name = name

	amount, err := decimalField(in.Amount)
	if err == nil && !amount.IsPositive() {
		err = errNotPos
	}
	switch {
	case err == nil:
		app.Amount = amount
	case e.mode.IsStrict():
		errs = append(errs, model.NewValidationError("amount", err.Error()))
	default:
		v := e.rng.Uniform(minPlaceholderAmount, maxPlaceholderAmount)
		app.Amount = decimal.NewFromFloat(v).Truncate(2)
	}

	raw, err := stringField(in.Terms)
	switch {
	case errors.Is(err, errAbsent):
		app.Terms = valueobject.DefaultContractTerms
	case err != nil:
		if e.mode.IsStrict() {
			errs = append(errs, model.NewValidationError("terms", err.Error()))
		} else {
			app.Terms = valueobject.DefaultContractTerms
		}
	default:
		terms, perr := valueobject.ParseContractTerms(raw)
		switch {
		case perr == nil:
			app.Terms = terms
		case e.mode.IsStrict():
			errs = append(errs, model.NewValidationError("terms", "must look like NET<days>"))
		default:
			app.Terms = valueobject.UnrecognizedContractTerms(raw)
		}
	}

	if len(errs) > 0 {
		return SupplierApplication{}, errors.Join(errs...)
	}
	return app, nil
}

// Buyer normalizes a buyer activity record.
func (e *Extractor) Buyer(in BuyerInput) (BuyerActivity, error) {
	var errs []error
	act := BuyerActivity{}

	id, err := stringField(in.ID)
	if err != nil {
		errs = append(errs, model.NewValidationError("id", err.Error()))
	}
	act.ID = id

	name, err := stringField(in.Name)
	if err != nil {
		name = id
	}
	act.Name = name

	lastOrder, err := timeField(in.LastOrderDate)
	switch {
	case err == nil:
		act.LastOrderAt = lastOrder
	case e.mode.IsStrict():
		errs = append(errs, model.NewValidationError("last_order_date", err.Error()))
	default:
		act.LastOrderAt = e.clock.Now().Add(-DefaultRecencyWindow)
	}

	freq, err := e.count(in.OrderFrequency)
	switch {
	case err == nil:
		act.OrderFrequency = freq
	case e.mode.IsStrict():
		errs = append(errs, model.NewValidationError("order_frequency", err.Error()))
	}

	basket, err := decimalField(in.BasketSize)
	if err == nil && basket.IsNegative() {
		err = errNegative
	}
	switch {
	case err == nil:
		act.BasketSize = basket
	case e.mode.IsStrict():
		errs = append(errs, model.NewValidationError("basket_size", err.Error()))
	default:
		act.BasketSize = decimal.Zero
	}

	if len(errs) > 0 {
		return BuyerActivity{}, errors.Join(errs...)
	}
	return act, nil
}

// Product normalizes an inventory snapshot. The historical average defaults
// to 100 when absent in either mode.
func (e *Extractor) Product(in ProductInput) (InventorySnapshot, error) {
	var errs []error
	snap := InventorySnapshot{}

	id, err := stringField(in.ProductID)
	if err != nil {
		errs = append(errs, model.NewValidationError("product_id", err.Error()))
	}
	snap.ProductID = id

	avg, err := decimalField(in.HistoricalAvg)
	if err == nil && avg.IsNegative() {
		err = errNegative
	}
	switch {
	case err == nil:
		snap.HistoricalAverage = avg.InexactFloat64()
	case errors.Is(err, errAbsent) || !e.mode.IsStrict():
		snap.HistoricalAverage = DefaultHistoricalAverage
	default:
		errs = append(errs, model.NewValidationError("historical_avg", err.Error()))
	}

	inv, err := e.count(in.CurrentInventory)
	switch {
	case err == nil:
		snap.CurrentInventory = inv
	case e.mode.IsStrict():
		errs = append(errs, model.NewValidationError("current_inventory", err.Error()))
	}

	if len(errs) > 0 {
		return InventorySnapshot{}, errors.Join(errs...)
	}
	return snap, nil
}

// count parses a non-negative whole number. Default-fill floors fractions,
// clamps values above valueobject.MaxQuantity and maps anything unusable to 0.
func (e *Extractor) count(v any) (int, error) {
	d, err := decimalField(v)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, errNegative
	}
	if !d.IsInteger() {
		if e.mode.IsStrict() {
			return 0, errFraction
		}
		d = d.Floor()
	}
	if d.GreaterThan(maxQuantity) {
		if e.mode.IsStrict() {
			return 0, errTooLarge
		}
		return valueobject.MaxQuantity, nil
	}
	return int(d.IntPart()), nil
}
