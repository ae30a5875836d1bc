// Package detect infers which spreadsheet columns hold which fields.
//
// Rental schedules are matched by column label against keyword lists.
// Bank statements have no reliable labels, so their columns are found by
// inspecting cell contents.
package detect

import (
	"strings"
)

// Semantic field names.
const (
	FieldGarage = "garage_name"
	FieldAmount = "payment_amount"
	FieldDate   = "payment_date"
	FieldTenant = "tenant_name"
)

// Keywords holds lower-case label fragments for each rent field.
type Keywords struct {
	Garage []string `yaml:"garage_name"`
	Amount []string `yaml:"payment_amount"`
	Date   []string `yaml:"payment_date"`
	Tenant []string `yaml:"tenant_name"`
}

// DefaultKeywords returns the built-in keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Garage: []string{"гараж", "garage", "бокс", "box", "объект"},
		Amount: []string{"сумма", "amount", "payment_amount", "оплата", "стоимость", "rent"},
		Date:   []string{"дата", "date", "payment_date", "срок", "день"},
		Tenant: []string{"арендатор", "tenant", "фио", "плательщик"},
	}
}

// withDefaults fills empty lists from DefaultKeywords.
func (k Keywords) withDefaults() Keywords {
	def := DefaultKeywords()
	if len(k.Garage) == 0 {
		k.Garage = def.Garage
	}
	if len(k.Amount) == 0 {
		k.Amount = def.Amount
	}
	if len(k.Date) == 0 {
		k.Date = def.Date
	}
	if len(k.Tenant) == 0 {
		k.Tenant = def.Tenant
	}
	return k
}

// RentMapping maps rent fields to original column labels.
// Tenant is empty when no tenant column was found.
type RentMapping struct {
	Garage string
	Amount string
	Date   string
	Tenant string
}

// RentColumns finds the garage, amount and date columns (and optionally
// the tenant column) among columns. Each field takes the first column, in
// table order, whose label contains one of its keywords case-insensitively.
// A column claimed by one field is not offered to the next; fields are
// resolved date, amount, garage, tenant.
func RentColumns(columns []string, kw Keywords) (RentMapping, error) {
	kw = kw.withDefaults()
	claimed := make(map[int]bool)

	find := func(keywords []string) string {
		for i, col := range columns {
			if claimed[i] {
				continue
			}
			label := strings.ToLower(strings.TrimSpace(col))
			for _, k := range keywords {
				if strings.Contains(label, strings.ToLower(k)) {
					claimed[i] = true
					return col
				}
			}
		}
		return ""
	}

	var m RentMapping
	m.Date = find(kw.Date)
	m.Amount = find(kw.Amount)
	m.Garage = find(kw.Garage)
	m.Tenant = find(kw.Tenant)

	var missing []string
	if m.Garage == "" {
		missing = append(missing, FieldGarage)
	}
	if m.Amount == "" {
		missing = append(missing, FieldAmount)
	}
	if m.Date == "" {
		missing = append(missing, FieldDate)
	}
	if len(missing) > 0 {
		return RentMapping{}, &MissingColumnError{
			Table:     "rent",
			Missing:   missing,
			Available: append([]string(nil), columns...),
		}
	}
	return m, nil
}
