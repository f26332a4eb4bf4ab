package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		expected Category
	}{
		{"spice", "CANELA EM PO 500G", Category("Especiarias")},
		{"spice lowercase", "canela em casca", Category("Especiarias")},
		{"dried fruit", "UVA PASSA PRETA", Category("Frutas Secas")},
		{"nut", "CASTANHA DE CAJU W1", Category("Oleaginosas")},
		{"flour", "FARINHA DE TRIGO INTEGRAL", Category("Farinhas")},
		{"tea", "CHA VERDE IMPORTADO", Category("Chás")},
		{"herb", "HORTELA DESIDRATADA", Category("Chás")},
		{"oil", "AZEITE EXTRA VIRGEM", Category("Óleos")},
		{"butter", "MANTEIGA GHEE 300G", Category("Óleos")},
		{"supplement", "WHEY PROTEIN ISOLADO", Category("Suplementos")},
		{"omega supplement", "OMEGA 3 EM CAPSULAS", Category("Suplementos")},
		{"seed", "SEMENTE DE CHIA", Category("Grãos/Sementes")},
		{"sweetener", "ACUCAR DE COCO", Category("Açúcares/Adoçantes")},
		{"honey", "MEL SILVESTRE PURO", Category("Açúcares/Adoçantes")},
		{"cocoa", "NIBS DE CACAU", Category("Cacau")},
		{"unknown", "SAL ROSA DO HIMALAIA", CategoryOutros},
		{"empty name", "", CategoryOutros},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCategory(tt.product))
		})
	}
}

func TestClassifyCategoryFirstMatchWins(t *testing.T) {
	// FARINHA DE CASTANHA names both a flour and a nut; the nut rule comes
	// first in the table.
	assert.Equal(t, Category("Oleaginosas"), ClassifyCategory("FARINHA DE CASTANHA"))

	// Same precedence keeps nut butters with the nuts rather than the
	// oils and butters family.
	assert.Equal(t, Category("Oleaginosas"), ClassifyCategory("MANTEIGA DE AMENDOIM"))
}
