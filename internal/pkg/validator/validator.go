// Package validator checks structs against their `validate` tags and turns
// failures into one joined error rooted at ErrValidationFailed.
//
// Fields are reported by their yaml or json key when they have one, so a bad
// config file entry is reported as `token_addresses[usdc]` rather than by its
// Go field name. On top of the go-playground built-ins, the `pubkey` tag
// accepts base58 strings that decode to a 32-byte account address.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gabapcia/geyserwatch/internal/pkg/types"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error of every chain returned by Validate.
var ErrValidationFailed = errors.New("struct validation failed")

const pubkeyTag = "pubkey"

var validator = newValidator()

func newValidator() *gvalidator.Validate {
	v := gvalidator.New(gvalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation(pubkeyTag, isPublicKey); err != nil {
		panic(err)
	}

	return v
}

// fieldName prefers the serialized key of a field over its Go name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"yaml", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func isPublicKey(fl gvalidator.FieldLevel) bool {
	return types.Base58(fl.Field().String()).IsPublicKey()
}

func formatError(err error) error {
	var fieldErrs gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs)+1)
	errs = append(errs, ErrValidationFailed)
	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, fmt.Errorf("%s: value %q fails %q", fe.Field(), fmt.Sprint(fe.Value()), rule))
	}

	return errors.Join(errs...)
}

// Validate returns nil when v satisfies its tags. Otherwise the error wraps
// ErrValidationFailed followed by one line per failing field:
//
//	type WatchedAddress struct {
//	    Label   string `validate:"required"`
//	    Address string `validate:"required,pubkey"`
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
