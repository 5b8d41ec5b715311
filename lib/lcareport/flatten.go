package lcareport

import (
	"fmt"
	"sort"
)

// Field names one of the five lifecycle-phase values of an indicator.
type Field string

const (
	FieldManufacture Field = "MANUFACTURE"
	FieldDisposal    Field = "DISPOSAL"
	FieldServicing   Field = "SERVICING"
	FieldTotal       Field = "TOTAL"
	FieldPotential   Field = "POTENTIAL"
)

// Fields in the order they appear in a report row.
var Fields = [5]Field{
	FieldManufacture,
	FieldDisposal,
	FieldServicing,
	FieldTotal,
	FieldPotential,
}

func (ind Indicator) Value(f Field) float64 {
	switch f {
	case FieldManufacture:
		return ind.Manufacture
	case FieldDisposal:
		return ind.Disposal
	case FieldServicing:
		return ind.Servicing
	case FieldTotal:
		return ind.Total
	case FieldPotential:
		return ind.Potential
	}
	panic(fmt.Sprintf("unknown indicator field %q", f))
}

// PlaceholderMap maps composite placeholder keys to single numeric values.
// The key grammar, CATEGORY/INDICATOR/UNIT/FIELD, is embedded literally in
// template cells and must stay bit-exact for existing templates to keep
// working.
type PlaceholderMap map[string]float64

func PlaceholderKey(category CategoryCode, indicator IndicatorCode, unit UnitCode, field Field) string {
	return fmt.Sprintf("%s/%s/%s/%s", category, indicator, unit, field)
}

// Flatten folds a Report into its placeholder namespace: one entry per
// (category, indicator, field) triple. Iteration is sorted so diagnostics
// and logs are stable across runs. A key colliding with an already-emitted
// one means the vocabulary mapped two distinct entries onto the same code,
// which is a bug, not bad input.
func Flatten(report Report) (PlaceholderMap, error) {
	out := PlaceholderMap{}

	for _, category := range sortedKeys(report) {
		indicators := report[category]
		for _, code := range sortedKeys(indicators) {
			ind := indicators[code]
			for _, field := range Fields {
				key := PlaceholderKey(category, code, ind.Unit, field)
				if err := put(out, key, ind.Value(field)); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

func put(m PlaceholderMap, key string, value float64) error {
	if _, exists := m[key]; exists {
		return DuplicatePlaceholderKeyError{Key: key}
	}
	m[key] = value
	return nil
}

// SortedKeys returns the map's placeholder keys in lexicographic order,
// for rendering and logging.
func (m PlaceholderMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
