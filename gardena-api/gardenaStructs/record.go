package gardenaStructs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrMalformed is returned when a raw value cannot be converted into the
// declared record shape.
var ErrMalformed = errors.New("malformed record")

// Records are plain structs. The mapstructure tag of a field is its key in
// the raw mapping, nested struct and slice-of-struct fields are converted
// recursively, and the field tagged ",remain" collects undeclared keys.

// Construct builds a record of type T from a raw mapping as produced by
// encoding/json. Nested values that already are records of the declared
// type are kept as they are.
func Construct[T any](raw map[string]any) (T, error) {
	var record T
	if err := Decode(raw, &record); err != nil {
		return record, err
	}
	return record, nil
}

// ConstructWeak is Construct with weakly typed scalars, see DecodeWeak.
func ConstructWeak[T any](raw map[string]any) (T, error) {
	var record T
	if err := DecodeWeak(raw, &record); err != nil {
		return record, err
	}
	return record, nil
}

// Decode converts input into the record pointed to by out.
func Decode(input any, out any) error {
	return decode(input, out, false)
}

// DecodeWeak converts input like Decode but accepts scalars of another kind
// where a scalar is declared, e.g. the number 400 for a string field.
func DecodeWeak(input any, out any) error {
	return decode(input, out, true)
}

func decode(input any, out any, weak bool) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       deviceRefHook,
		WeaklyTypedInput: weak,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	markSupplied(input, reflect.ValueOf(out))
	return nil
}

// fieldSet is embedded in every entity and remembers which declared keys the
// raw mapping supplied. The value is true when the supplied value was null.
type fieldSet struct {
	supplied map[string]bool
}

func (s *fieldSet) mark(key string, null bool) {
	if s.supplied == nil {
		s.supplied = make(map[string]bool)
	}
	s.supplied[key] = null
}

func (s fieldSet) lookup(key string) (supplied, null bool) {
	null, supplied = s.supplied[key]
	return supplied, null
}

type fieldMarker interface {
	mark(key string, null bool)
}

type fieldLookup interface {
	lookup(key string) (supplied, null bool)
}

// markSupplied walks a freshly decoded record alongside its raw input and
// records the declared keys present in every raw mapping. Values that
// already were records keep the marks they were built with.
func markSupplied(raw any, v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if !v.IsNil() {
			markSupplied(raw, v.Elem())
		}
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok || len(items) != v.Len() {
			return
		}
		for i, item := range items {
			markSupplied(item, v.Index(i))
		}
	case reflect.Struct:
		doc, ok := raw.(map[string]any)
		if !ok || !v.CanAddr() {
			return
		}
		marker, _ := v.Addr().Interface().(fieldMarker)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			name, opts, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
			if !field.IsExported() || opts == "remain" {
				continue
			}
			if name == "" {
				name = field.Name
			}
			value, ok := lookupKey(doc, name)
			if !ok {
				continue
			}
			if marker != nil {
				marker.mark(name, value == nil)
			}
			markSupplied(value, v.Field(i))
		}
	}
}

// lookupKey matches keys the way mapstructure does: exact first, then
// case-insensitive.
func lookupKey(doc map[string]any, name string) (any, bool) {
	if value, ok := doc[name]; ok {
		return value, true
	}
	for key, value := range doc {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

type flattener interface {
	flatten() any
}

// Flatten turns a record back into a raw mapping. Declared fields are
// emitted when they are non-zero or were supplied to Construct, undeclared
// keys are merged back in at the top level.
func Flatten(record any) map[string]any {
	v := reflect.Indirect(reflect.ValueOf(record))
	if v.Kind() != reflect.Struct {
		return nil
	}
	flat, _ := flattenValue(v).(map[string]any)
	return flat
}

func flattenValue(v reflect.Value) any {
	if v.CanInterface() {
		if f, ok := v.Interface().(flattener); ok {
			return f.flatten()
		}
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return flattenValue(v.Elem())
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name, opts, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
			value := v.Field(i)
			if opts == "remain" {
				extra, _ := value.Interface().(map[string]any)
				for k, x := range extra {
					out[k] = x
				}
				continue
			}
			if name == "" {
				name = field.Name
			}
			if value.IsZero() {
				supplied, null := suppliedKey(v, name)
				if !supplied {
					continue
				}
				if null {
					out[name] = nil
					continue
				}
			}
			out[name] = flattenValue(value)
		}
		return out
	case reflect.Slice:
		elem := v.Type().Elem()
		if elem.Kind() != reflect.Struct && elem.Kind() != reflect.Pointer {
			return v.Interface()
		}
		out := make([]any, v.Len())
		for i := range out {
			out[i] = flattenValue(v.Index(i))
		}
		return out
	}
	return v.Interface()
}

func suppliedKey(v reflect.Value, name string) (supplied, null bool) {
	if !v.CanInterface() {
		return false, false
	}
	if l, ok := v.Interface().(fieldLookup); ok {
		return l.lookup(name)
	}
	return false, false
}

// describe renders a record as Name(key=value, ...) with sorted keys.
func describe(name string, record any) string {
	flat := Flatten(record)
	keys := maps.Keys(flat)
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, flat[k]))
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
