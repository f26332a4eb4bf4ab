package analytics

import "strings"

// Category is the keyword-based product family tag.
type Category string

const CategoryOutros Category = "Outros"

type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules is an ordered first-match-wins keyword table evaluated over
// the upper-cased product name.
var categoryRules = []categoryRule{
	{"Especiarias", []string{"CANELA", "CRAVO", "PIMENTA", "GENGIBRE", "CURCUMA", "PAPRICA", "ALHO", "CEBOLA", "OREGANO"}},
	{"Frutas Secas", []string{"UVA PASSA", "DAMASCO", "GOJI", "CRANBERRY", "AMEIXA", "TAMARA"}},
	{"Oleaginosas", []string{"AMENDOA", "CASTANHA", "NOZES", "AMENDOIM", "PISTACHE", "MACADAMIA"}},
	{"Farinhas", []string{"FARINHA"}},
	{"Chás", []string{"CHA", "HIBISCO", "CAMOMILA", "ERVA DOCE", "HORTELA", "BOLDO"}},
	{"Óleos", []string{"OLEO", "AZEITE", "MANTEIGA", "GHEE"}},
	{"Suplementos", []string{"WHEY", "PROTEIN", "COLAGENO", "VITAMINA", "OMEGA"}},
	{"Grãos/Sementes", []string{"CHIA", "LINHACA", "QUINOA", "AVEIA", "GIRASSOL", "ABOBORA"}},
	{"Açúcares/Adoçantes", []string{"ACUCAR", "MEL", "ADOCANTE", "STEVIA", "XILITOL", "ERITRITOL"}},
	{"Cacau", []string{"CACAU", "CHOCOLATE", "NIBS"}},
}

// ClassifyCategory tags a product name with its category. Matching is a
// case-insensitive substring test; the first matching rule wins and unknown
// names fall through to Outros.
func ClassifyCategory(productName string) Category {
	name := strings.ToUpper(strings.TrimSpace(productName))
	if name == "" {
		return CategoryOutros
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return CategoryOutros
}
