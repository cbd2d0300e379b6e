package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[symbol]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// SymbolType validates strings holding exactly one code point.
type SymbolType struct{}

func (t *SymbolType) Name() string { return "symbol" }

func (t *SymbolType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected symbol, got %T", value)
	}
	if utf8.RuneCountInString(s) != 1 {
		return fmt.Errorf("expected a single character, got %q", s)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected list, got %T", value)
	}

	// Validate each element
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return at(strconv.Itoa(i), err)
		}
	}
	return nil
}

// MapType validates string-keyed maps whose values share one type.
type MapType struct {
	elemType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{%s}", t.elemType.Name())
}

func (t *MapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("expected object, got %T", value)
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	for _, k := range keys {
		elem := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return at(k, err)
		}
	}
	return nil
}

// TupleType validates fixed-length lists with a type per position.
type TupleType struct {
	elemTypes []Type
}

func (t *TupleType) Name() string {
	names := make([]string, len(t.elemTypes))
	for i, e := range t.elemTypes {
		names[i] = e.Name()
	}
	return "(" + strings.Join(names, ",") + ")"
}

func (t *TupleType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected %s, got %T", t.Name(), value)
	}
	if rv.Len() != len(t.elemTypes) {
		return fmt.Errorf("expected %s, got %d elements", t.Name(), rv.Len())
	}
	for i, typ := range t.elemTypes {
		if err := typ.Validate(rv.Index(i).Interface()); err != nil {
			return at(strconv.Itoa(i), err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Symbol creates a single-character string validator.
func Symbol() Type { return &SymbolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a validator for string-keyed maps with values of the given type.
func Map(elemType Type) Type {
	return &MapType{elemType: elemType}
}

// Tuple creates a validator for fixed-length lists.
func Tuple(elemTypes ...Type) Type {
	return &TupleType{elemTypes: elemTypes}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
