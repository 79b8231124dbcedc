package validation

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Location is where a field is read from.
type Location string

const (
	LocationBody   Location = "body"
	LocationParams Location = "params"
)

// FieldError describes one failed rule.
type FieldError struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// Rule is a single check over one request field.
type Rule struct {
	Location Location
	Field    string
	Tag      string
	Message  string
	// Raw checks the decoded JSON value instead of its textual form.
	Raw bool
}

// Check evaluates the rule against in and returns the failure, if any.
func (r Rule) Check(in *Input) *FieldError {
	raw, text := in.lookup(r.Location, r.Field)
	var value any = text
	if r.Raw {
		value = raw
	}
	if err := validate.Var(value, r.Tag); err == nil {
		return nil
	}
	return &FieldError{
		Type:     "field",
		Value:    raw,
		Msg:      r.Message,
		Path:     r.Field,
		Location: r.Location,
	}
}

// Field names a request field rules can be declared on.
type Field struct {
	location Location
	name     string
}

// Body refers to a top-level field of the JSON request body.
func Body(name string) Field {
	return Field{location: LocationBody, name: name}
}

// Param refers to a route path parameter.
func Param(name string) Field {
	return Field{location: LocationParams, name: name}
}

func (f Field) rule(tag, message string) Rule {
	return Rule{Location: f.location, Field: f.name, Tag: tag, Message: message}
}

// NotEmpty fails when the field is missing, null or the empty string.
func (f Field) NotEmpty(message string) Rule { return f.rule("required", message) }

// IsNumeric fails unless the field is a decimal number.
func (f Field) IsNumeric(message string) Rule { return f.rule("numeric", message) }

// IsPositive fails unless the field, rounded to cents, is greater than zero.
func (f Field) IsPositive(message string) Rule { return f.rule("positive", message) }

// IsAtMost fails when the field, rounded to cents, is a number above limit.
// Non-numeric values are left to IsNumeric.
func (f Field) IsAtMost(limit, message string) Rule {
	return f.rule("decimal_lte="+limit, message)
}

// MaxLength fails when the field is longer than n characters.
func (f Field) MaxLength(n int, message string) Rule {
	return f.rule("max="+strconv.Itoa(n), message)
}

// IsBoolean fails unless the field is a JSON true or false.
func (f Field) IsBoolean(message string) Rule {
	r := f.rule("strictbool", message)
	r.Raw = true
	return r
}

// IsInt fails unless the field is an integer.
func (f Field) IsInt(message string) Rule { return f.rule("integer", message) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	custom := map[string]validator.Func{
		"positive":    isPositive,
		"decimal_lte": isDecimalAtMost,
		"integer":     isInteger,
		"strictbool":  isStrictBool,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// Prices are stored with two decimals, so both bounds look at the rounded value.
func isPositive(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && d.Round(2).IsPositive()
}

func isDecimalAtMost(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return true
	}
	return d.Round(2).LessThanOrEqual(decimal.RequireFromString(fl.Param()))
}

func isInteger(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}

func isStrictBool(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.Bool
}
