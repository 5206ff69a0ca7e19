// Package validation checks request DTOs with go-playground/validator and
// converts violations into common.ValidationError.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest input bcrypt accepts. Checked in bytes,
// unlike the rune-counting "max" tag.
const MaxPasswordBytes = 72

// Validator is safe for concurrent use; validator caches struct metadata.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return &Validator{v: v}
}

// Struct validates s. It returns nil, a *common.ValidationError listing
// every failing field in declaration order, or the validator's own error
// when s is not a struct.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &common.ValidationError{Fields: make([]common.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, common.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "bcryptmax":
		return label + " must be at most " + strconv.Itoa(MaxPasswordBytes) + " bytes"
	case "email":
		return "Please provide a valid email"
	default:
		return label + " is invalid"
	}
}

// label turns a json field name into a display name: "phone" -> "Phone".
func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
