package nethttp

import (
	"encoding/json"
	"reflect"

	"github.com/gofiber/fiber/v2"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// DecodeHandlerFunc receives a struct decoded and validated by WithBody.
type DecodeHandlerFunc func(p any, c *fiber.Ctx) error

func newOfType(s any) any {
	t := reflect.TypeOf(s)
	v := reflect.New(t.Elem())

	return v.Interface()
}

// WithBody decodes the request body into a fresh instance of the struct
// pointed to by s, rejects an empty body or any key the struct doesn't
// declare, validates the result, and hands it to h. Any of these failures
// short-circuits with a 400 before h is ever called.
func WithBody(s any, h DecodeHandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bodyBytes := c.Body()

		body := newOfType(s)

		if err := json.Unmarshal(bodyBytes, body); err != nil {
			return WithError(c, lmerrors.ValidationError{
				Title:   "Malformed Body",
				Message: "The request body could not be parsed as JSON.",
			})
		}

		var originalFields map[string]any

		if err := json.Unmarshal(bodyBytes, &originalFields); err != nil {
			return WithError(c, lmerrors.ValidationError{
				Title:   "Malformed Body",
				Message: "The request body could not be parsed as JSON.",
			})
		}

		if len(originalFields) == 0 {
			return WithError(c, lmerrors.ValidationError{
				Title:   "Empty Body",
				Message: "The request body must not be empty.",
			})
		}

		if unknown := unknownFields(originalFields, body); len(unknown) > 0 {
			return WithError(c, lmerrors.ValidationError{
				Title:   "Unrecognized Fields",
				Message: "The request body contains fields this endpoint does not recognize.",
				Fields:  unknown,
			})
		}

		if err := ValidateStruct(body); err != nil {
			return WithError(c, err)
		}

		return h(body, c)
	}
}

// unknownFields re-marshals the decoded struct and diffs its keys against
// the raw request body: any key present in the raw body but absent from the
// re-marshaled struct was silently dropped by json.Unmarshal, meaning the
// struct has no field (or tag) for it.
func unknownFields(originalFields map[string]any, body any) map[string]string {
	marshaled, err := json.Marshal(body)
	if err != nil {
		return nil
	}

	var structFields map[string]any
	if err := json.Unmarshal(marshaled, &structFields); err != nil {
		return nil
	}

	unknown := make(map[string]string)

	for key := range originalFields {
		if _, ok := structFields[key]; !ok {
			unknown[key] = "unrecognized field"
		}
	}

	return unknown
}
