package pager

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var ErrInvalidFormValue = errors.New("invalid form value")

// ParseForm parses req.Form (query string included) and copies the values
// into the struct pointed by dst. Form names match the 'html' tag of each
// field or, if it is not set, the field name. Only one-depth structs are
// supported:
//
//	type PageRequest struct {
//		Page    int  `html:"page"`
//		PerPage *int `html:"per_page"`
//	}
//
// "page=2" fills Page and leaves PerPage nil. A value that cannot be
// converted to the field type makes ParseForm fail with
// ErrInvalidFormValue. Supported field types are int, int8, int16, int32,
// int64, float32, float64, bool and string, and pointers to them.
func (ctx *Context) ParseForm(dst any) error {
	if err := ctx.Req.ParseForm(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormValue, err)
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("cannot parse form into %T: a struct pointer is needed", dst)
	}
	e := v.Elem()
	t := e.Type()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("cannot parse form into %T: a struct pointer is needed", dst)
	}
	for i := 0; i < t.NumField(); i++ {
		fieldValue := e.Field(i)
		fieldType := t.Field(i)
		lookup, ok := fieldType.Tag.Lookup("html")
		if !ok {
			lookup = fieldType.Name
		}
		if !ctx.Req.Form.Has(lookup) {
			continue
		}
		if !fieldValue.IsValid() || !fieldValue.CanSet() {
			continue
		}
		value := ctx.Req.Form.Get(lookup)
		if !setValue(fieldValue, value) {
			return fmt.Errorf("%w: '%s' cannot be '%s'", ErrInvalidFormValue, lookup, value)
		}
	}
	return nil
}

func setValue(field reflect.Value, value string) bool {
	t := field.Type()
	isPointer := false
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		isPointer = true
		if value == "" {
			return true
		}
	}
	switch t.Kind() {
	case reflect.String:
		return setString(field, value, isPointer)
	case reflect.Int:
		return setInt[int](field, value, isPointer, strconv.IntSize)
	case reflect.Int64:
		return setInt[int64](field, value, isPointer, 64)
	case reflect.Int32:
		return setInt[int32](field, value, isPointer, 32)
	case reflect.Int16:
		return setInt[int16](field, value, isPointer, 16)
	case reflect.Int8:
		return setInt[int8](field, value, isPointer, 8)
	case reflect.Float64:
		return setFloat[float64](field, value, isPointer, 64)
	case reflect.Float32:
		return setFloat[float32](field, value, isPointer, 32)
	case reflect.Bool:
		return setBool(field, value, isPointer)
	default:
		return false
	}
}

func set[T any](field reflect.Value, v T, isPointer bool) {
	if isPointer {
		field.Set(reflect.ValueOf(&v))
	} else {
		field.Set(reflect.ValueOf(v))
	}
}

func setInt[T int | int8 | int16 | int32 | int64](field reflect.Value, value string, isPointer bool, bits int) bool {
	i, err := strconv.ParseInt(value, 10, bits)
	if err != nil {
		return false
	}
	set(field, T(i), isPointer)
	return true
}

func setFloat[T float64 | float32](field reflect.Value, value string, isPointer bool, bits int) bool {
	f, err := strconv.ParseFloat(value, bits)
	if err != nil {
		return false
	}
	set(field, T(f), isPointer)
	return true
}

func setBool(field reflect.Value, value string, isPointer bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	set(field, b, isPointer)
	return true
}

func setString(field reflect.Value, value string, isPointer bool) bool {
	set(field, value, isPointer)
	return true
}
