package dashboard

import (
	"github.com/shopspring/decimal"

	"wastage-backend/internal/models"
)

// ConversionTable: birim -> kilogram çarpanı.
// Tabloda olmayan birimler (L, ml, units) kütle toplamına 0 katkı yapar.
type ConversionTable map[models.WastageUnit]decimal.Decimal

// DefaultMassTable: gram 1000'e bölünür, sıvılar kütleyle karşılaştırılmaz.
var DefaultMassTable = ConversionTable{
	models.UnitKilogram: decimal.NewFromInt(1),
	models.UnitGram:     decimal.New(1, -3),
}

// With: tabloyu kopyalayıp yeni birim ekler (ör. L -> 1 kabul eden mutfaklar için)
func (t ConversionTable) With(unit models.WastageUnit, factor decimal.Decimal) ConversionTable {
	out := make(ConversionTable, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[unit] = factor
	return out
}

// Kilograms: çarpanı olmayan birim için sıfır döner
func (t ConversionTable) Kilograms(quantity float64, unit models.WastageUnit) decimal.Decimal {
	factor, ok := t[unit]
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(quantity).Mul(factor)
}
