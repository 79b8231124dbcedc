package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	inputKey  = "validation.input"
	errorsKey = "validation.errors"
)

// ErrMalformedBody is returned when the request body is not a JSON object.
var ErrMalformedBody = errors.New("request body is not a JSON object")

// Input is the parsed request data rules are evaluated against.
type Input struct {
	body   map[string]any
	params map[string]string
}

// NewInput builds an Input from an already decoded body and path parameters.
func NewInput(body map[string]any, params map[string]string) *Input {
	if body == nil {
		body = map[string]any{}
	}
	if params == nil {
		params = map[string]string{}
	}
	return &Input{body: body, params: params}
}

// InputFrom returns the request's Input, parsing the body on first use.
func InputFrom(c *fiber.Ctx) (*Input, error) {
	if in, ok := c.Locals(inputKey).(*Input); ok {
		return in, nil
	}
	body, err := decodeBody(c.Body())
	if err != nil {
		return nil, err
	}
	in := NewInput(body, c.AllParams())
	c.Locals(inputKey, in)
	return in, nil
}

// decodeBody keeps numbers as json.Number so the client's digits survive.
func decodeBody(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrMalformedBody
	}
	return body, nil
}

func (in *Input) lookup(loc Location, field string) (any, string) {
	if loc == LocationParams {
		v := in.params[field]
		return v, v
	}
	v := in.body[field]
	return v, toText(v)
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// String returns the textual value of a body field.
func (in *Input) String(field string) string {
	return toText(in.body[field])
}

// Decimal returns a body field as a decimal.
func (in *Input) Decimal(field string) (decimal.Decimal, error) {
	return decimal.NewFromString(in.String(field))
}

// Bool returns a body field as a boolean.
func (in *Input) Bool(field string) (bool, error) {
	return strconv.ParseBool(in.String(field))
}

// Run evaluates rules in order and returns every failure.
func Run(in *Input, rules ...Rule) []FieldError {
	var failures []FieldError
	for _, r := range rules {
		if fe := r.Check(in); fe != nil {
			failures = append(failures, *fe)
		}
	}
	return failures
}

// Validate returns a handler that records the failures of rules in the
// request's error collection and passes control to the next handler.
func Validate(rules ...Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := InputFrom(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El cuerpo de la peticion no es JSON valido")
		}
		if failures := Run(in, rules...); len(failures) > 0 {
			c.Locals(errorsKey, append(Errors(c), failures...))
		}
		return c.Next()
	}
}

// Errors returns the failures recorded so far for the request.
func Errors(c *fiber.Ctx) []FieldError {
	errs, _ := c.Locals(errorsKey).([]FieldError)
	return errs
}
