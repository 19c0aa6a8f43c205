package validator

import (
	"errors"
	"reflect"
	"strings"

	playgroundValidator "github.com/go-playground/validator/v10"
)

func ModelError(errs []ValidationError) map[string]string {
	vmErr := map[string]string{}
	for _, e := range errs {
		vmErr[e.Field] = e.Tag
	}
	return vmErr
}

type ValidationError struct {
	// Tag is the condition that have failed
	Tag string

	// Complete path to the field that have the error.
	Path string

	// Field is the name (and only the name) of the failing field
	Field string

	// Error is the stringified error
	Err string

	Value interface{}
	Kind  reflect.Kind
}

func (v ValidationError) Error() string {
	return v.Err
}

// Errors joins a list of validation errors in a single error. It returns
// nil for an empty list.
func Errors(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Err
	}
	return errors.New(strings.Join(msgs, "; "))
}

type PlaygroundValidator struct {
	validator *playgroundValidator.Validate
}

func NewPlayground() PlaygroundValidator {
	return PlaygroundValidator{validator: playgroundValidator.New(playgroundValidator.WithRequiredStructEnabled())}
}

func (val PlaygroundValidator) Validate(target interface{}) ([]ValidationError, error) {
	err := val.validator.Struct(target)
	if err != nil {
		var e playgroundValidator.ValidationErrors
		if !errors.As(err, &e) {
			return nil, err
		}
		return errorsToResult(e), nil
	}
	return []ValidationError{}, nil
}

func errorsToResult(ee playgroundValidator.ValidationErrors) []ValidationError {
	result := make([]ValidationError, len(ee))
	for i, e := range ee {
		result[i] = ValidationError{
			Tag:   e.ActualTag(),
			Path:  e.StructNamespace(),
			Field: e.Field(),
			Err:   e.Error(),
			Value: e.Value(),
			Kind:  e.Kind(),
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
