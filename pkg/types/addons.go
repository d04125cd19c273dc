package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AttachedAddon is an add-on baked into a cart line item at add-to-cart time.
// FieldName is the slug identity; Price is per unit of the add-on, in dollars.
type AttachedAddon struct {
	Label     string          `json:"label"`
	FieldName string          `json:"field_name"`
	Price     decimal.Decimal `json:"price"`
}

// AttachedAddons stores the add-ons attached to a line item as JSONB.
type AttachedAddons []AttachedAddon

// Value serializes the add-on list to JSON.
func (a AttachedAddons) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the add-on list.
func (a *AttachedAddons) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded AttachedAddons
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

// Total sums the attached add-on prices.
func (a AttachedAddons) Total() decimal.Decimal {
	total := decimal.Zero
	for _, addon := range a {
		total = total.Add(addon.Price)
	}
	return total
}

// FeeLine is a named cart-level price adjustment.
type FeeLine struct {
	Name   string          `json:"name"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// FeeLines stores the cart's fee lines as JSONB.
type FeeLines []FeeLine

// Value serializes the fee lines to JSON.
func (f FeeLines) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// Scan decodes JSONB into the fee lines.
func (f *FeeLines) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded FeeLines
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*f = decoded
	return nil
}

// Set replaces the fee line with the same name, or appends it.
func (f FeeLines) Set(line FeeLine) FeeLines {
	for i := range f {
		if f[i].Name == line.Name {
			f[i] = line
			return f
		}
	}
	return append(f, line)
}

// Find returns the named fee line when present.
func (f FeeLines) Find(name string) (FeeLine, bool) {
	for _, line := range f {
		if line.Name == name {
			return line, true
		}
	}
	return FeeLine{}, false
}

// Total sums the fee line amounts.
func (f FeeLines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range f {
		total = total.Add(line.Amount)
	}
	return total
}
