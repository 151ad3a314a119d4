package importer

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field names a canonical import target column.
type Field string

const (
	FieldInvoiceNumber    Field = "invoice_number"
	FieldIssueDate        Field = "issue_date"
	FieldSupplier         Field = "supplier"
	FieldProductOrService Field = "product_or_service"
	FieldCostCategory     Field = "cost_category"
	FieldPaymentMethod    Field = "payment_method"
	FieldAmount           Field = "amount"
	FieldTotalAmount      Field = "total_amount"
	FieldInstallments     Field = "installments"
	FieldDueDate          Field = "due_date"
	FieldLaunchDate       Field = "launch_date"
	FieldPaidDate         Field = "paid_date"
	FieldStatus           Field = "status"
)

// fieldAliases maps each target field to its accepted header names in
// priority order. Entries are written in normalized form (lowercase,
// accents folded, underscores collapsed to spaces), so "VENCIMENTO",
// "vencimento" and "Data de Vencimento" all land on the same keys.
var fieldAliases = map[Field][]string{
	FieldDueDate:          {"vencimento", "data de vencimento", "maturity", "data vencimento"},
	FieldLaunchDate:       {"lancamento", "data lancamento", "data de lancamento", "launch date"},
	FieldPaidDate:         {"pago", "data pagamento", "data de pagamento", "paid date"},
	FieldAmount:           {"valor", "value", "amount"},
	FieldTotalAmount:      {"valor total nf", "valor total", "total amount"},
	FieldInvoiceNumber:    {"nf", "nota fiscal", "invoice"},
	FieldIssueDate:        {"emissao", "data emissao", "issue date"},
	FieldSupplier:         {"fornecedor / favorecido", "fornecedor", "favorecido", "supplier"},
	FieldProductOrService: {"produto / servico", "produto/servico", "produto", "product"},
	FieldCostCategory:     {"custo obra", "custo da obra", "cost category"},
	FieldPaymentMethod:    {"forma de pg", "forma de pagamento", "payment method"},
	FieldStatus:           {"status", "situacao"},
	FieldInstallments:     {"parcela", "parcelas", "installments"},
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeKey folds a header name into its canonical lookup form.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(accentFolder, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// usable reports whether a cell carries a real value. The dash is the
// source system's placeholder for "not filled in".
func usable(v string) bool {
	return v != "" && v != "-"
}

// Resolve returns the first usable value for a field, trying each alias
// in priority order. When no alias matches exactly, a levenshtein pass
// absorbs single-character header typos; the edit distance of 1 on keys
// of at least 4 runes keeps unrelated columns from binding.
func (r Record) Resolve(f Field) (string, bool) {
	aliases := fieldAliases[f]
	for _, alias := range aliases {
		if v, ok := r[alias]; ok && usable(v) {
			return v, true
		}
	}
	for _, alias := range aliases {
		if len(alias) < 4 {
			continue
		}
		for key, v := range r {
			if len(key) < 4 || !usable(v) {
				continue
			}
			if levenshtein.ComputeDistance(alias, key) == 1 {
				return v, true
			}
		}
	}
	return "", false
}
