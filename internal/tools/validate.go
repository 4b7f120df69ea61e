package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkShape reports presence and type violations of args against the
// tool's declared arguments. Null counts as absent.
func (t Tool) checkShape(args map[string]any) []string {
	var violations []string
	for _, a := range t.Args {
		v, ok := args[a.Name]
		if !ok || v == nil {
			if a.Required {
				violations = append(violations, fmt.Sprintf("%s is required", a.Name))
			}
			continue
		}
		switch a.Type {
		case TypeString:
			if _, ok := v.(string); !ok {
				violations = append(violations, fmt.Sprintf("%s must be a string", a.Name))
			}
		case TypeInteger:
			if !isInteger(v) {
				violations = append(violations, fmt.Sprintf("%s must be an integer", a.Name))
			}
		}
	}
	return violations
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

// bind checks args against the tool's shape, decodes them into dst and runs
// the struct's validate tags. All violations are reported together and
// nothing is executed on failure.
func (d *Dispatcher) bind(t Tool, args map[string]any, dst any) *Error {
	if violations := t.checkShape(args); len(violations) > 0 {
		return validationError(t.Name, violations)
	}
	if len(t.Args) == 0 {
		return nil
	}

	known := make(map[string]any, len(t.Args))
	for _, a := range t.Args {
		if v, ok := args[a.Name]; ok && v != nil {
			known[a.Name] = v
		}
	}
	raw, err := json.Marshal(known)
	if err != nil {
		return validationError(t.Name, []string{err.Error()})
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return validationError(t.Name, []string{err.Error()})
	}

	if err := d.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return validationError(t.Name, []string{err.Error()})
		}
		violations := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			violations = append(violations, describe(fe))
		}
		return validationError(t.Name, violations)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
