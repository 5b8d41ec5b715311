package lcareport

import "fmt"

// The report vocabulary is closed-world: any label outside the tables in
// vocab.go aborts the whole parse so the operator can extend the tables
// instead of silently losing a value.

type UnknownCategoryError struct {
	Raw string
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown report category %q", e.Raw)
}

type UnknownIndicatorError struct {
	Raw string
}

func (e UnknownIndicatorError) Error() string {
	return fmt.Sprintf("unknown indicator %q", e.Raw)
}

type UnknownUnitError struct {
	Raw string
}

func (e UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Raw)
}

// MissingIndicatorLabelError is a row whose indicator cell is empty or
// absent entirely, as opposed to present but unrecognized.
type MissingIndicatorLabelError struct {
	Category CategoryCode
	Row      int
}

func (e MissingIndicatorLabelError) Error() string {
	return fmt.Sprintf("missing indicator label in category %s, row %d", e.Category, e.Row)
}

// DuplicateIndicatorError is the same indicator appearing twice under one
// category. The source data never legitimately does this, so it is treated
// as malformed input rather than an overwrite.
type DuplicateIndicatorError struct {
	Category  CategoryCode
	Indicator IndicatorCode
}

func (e DuplicateIndicatorError) Error() string {
	return fmt.Sprintf("indicator %s appears twice in category %s", e.Indicator, e.Category)
}

// DuplicatePlaceholderKeyError means two (category, indicator, field)
// triples flattened to the same key. This indicates a vocabulary or parser
// bug, not bad input.
type DuplicatePlaceholderKeyError struct {
	Key string
}

func (e DuplicatePlaceholderKeyError) Error() string {
	return fmt.Sprintf("duplicate placeholder key %q", e.Key)
}
