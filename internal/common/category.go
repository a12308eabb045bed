package common

import (
	"fmt"
	"sort"
)

// Category is the document group a file is filed under.
type Category string

const (
	CategorySoporteClinico     Category = "soporte_clinico"
	CategoryAutorizacion       Category = "autorizacion"
	CategoryOrdenMedica        Category = "orden_medica"
	CategoryHistoriaClinica    Category = "historia_clinica"
	CategoryFormulaMedica      Category = "formula_medica"
	CategoryResultadoExamen    Category = "resultado_examen"
	CategoryFactura            Category = "factura"
	CategoryComprobantePago    Category = "comprobante_pago"
	CategoryDocumentoIdentidad Category = "documento_identidad"
)

var categories = map[Category]struct{}{
	CategorySoporteClinico:     {},
	CategoryAutorizacion:       {},
	CategoryOrdenMedica:        {},
	CategoryHistoriaClinica:    {},
	CategoryFormulaMedica:      {},
	CategoryResultadoExamen:    {},
	CategoryFactura:            {},
	CategoryComprobantePago:    {},
	CategoryDocumentoIdentidad: {},
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

// Categories returns every known category in lexical order.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FileKey is the lookup key that ties an upload token back to a local file.
// The first occurrence of a name inside a category is keyed plainly,
// the n-th repeat gets "#n" appended.
func FileKey(c Category, name string, occurrence int) string {
	if occurrence == 0 {
		return fmt.Sprintf("%s:%s", c, name)
	}
	return fmt.Sprintf("%s:%s#%d", c, name, occurrence)
}

// KeyCounter hands out FileKey values in encounter order. Server and client
// both walk files in the same order, so they agree on keys for duplicates.
type KeyCounter struct {
	seen map[string]int
}

// NewKeyCounter returns an empty counter.
func NewKeyCounter() *KeyCounter {
	return &KeyCounter{seen: make(map[string]int)}
}

// Next returns the key for the next file called name in category c.
func (k *KeyCounter) Next(c Category, name string) string {
	plain := FileKey(c, name, 0)
	n := k.seen[plain]
	k.seen[plain] = n + 1
	return FileKey(c, name, n)
}
