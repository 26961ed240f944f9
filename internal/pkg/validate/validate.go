package validate

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New()
}

// Struct validates tagged fields and returns field->tag failures, or nil.
func Struct(s interface{}) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// Join flattens a failure map into a stable, readable one-liner.
func Join(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, f+" ("+tag+")")
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
