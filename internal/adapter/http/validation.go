package http

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"sacco-lending/internal/domain/loan"
	"sacco-lending/internal/domain/repayment"
	"sacco-lending/pkg/id"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json / query / path names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})
	// decimals validate as their canonical string
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		switch d := f.Interface().(type) {
		case decimal.Decimal:
			return d.String()
		case Amount:
			return d.String()
		}
		return nil
	}, decimal.Decimal{}, Amount{})

	// loan / reviewer ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.IsID32(fl.Field().String())
	})
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		return loan.Type(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("termmonths", func(fl validator.FieldLevel) bool {
		return loan.IsAllowedTerm(int(fl.Field().Int()))
	})
	_ = v.RegisterValidation("channel", func(fl validator.FieldLevel) bool {
		return repayment.Channel(fl.Field().String()).Valid()
	})
	// at most N decimal places, e.g. decplaces=2
	_ = v.RegisterValidation("decplaces", func(fl validator.FieldLevel) bool {
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return d.Equal(d.Truncate(int32(places)))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "loantype":
			out = append(out, FieldError{Field: field, Message: "must be one of emergency, development, education, business"})
		case "termmonths":
			out = append(out, FieldError{Field: field, Message: "must be one of 12, 18, 24, 30, 36, 48"})
		case "channel":
			out = append(out, FieldError{Field: field, Message: "must be one of cash, bank, mobile_money, checkoff"})
		case "decplaces":
			out = append(out, FieldError{Field: field, Message: "must have at most " + e.Param() + " decimal places"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date in " + e.Param() + " format"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of " + e.Param()})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " long"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
