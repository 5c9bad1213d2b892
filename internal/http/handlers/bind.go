package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/geocoder89/enrollhub/internal/domain/flex"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON decodes the body into out and answers 400 INVALID-REQUEST when it cannot.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := shouldBindJSON(ctx, out)

	if err != nil {
		RespondBadRequest(ctx, CodeInvalidRequest, "Invalid request body.", parseBindError(err, out))

		return false
	}

	return true
}

// bindCastable is BindJSON for requests whose free-form fields are cast by the store.
// A value that cannot be cast fails the operation with failCode, like a store rejection would.
func bindCastable(ctx *gin.Context, out interface{}, failCode, failMessage, op string) bool {
	err := shouldBindJSON(ctx, out)

	if err == nil {
		return true
	}

	var castErr *flex.CastError

	if errors.As(err, &castErr) {
		RespondInternal(ctx, failCode, failMessage, op, err)
		return false
	}

	RespondBadRequest(ctx, CodeInvalidRequest, "Invalid request body.", parseBindError(err, out))

	return false
}

// shouldBindJSON treats an empty body as "{}" so that struct rules still run.
func shouldBindJSON(ctx *gin.Context, out interface{}) error {
	err := ctx.ShouldBindJSON(out)

	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(out)
	}

	return err
}

// failedRule returns the first validation rule that failed for the named struct field.
func failedRule(err error, structField string) (string, bool) {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		return "", false
	}

	for _, fe := range validationErrors {
		if fe.StructField() == structField {
			return fe.Tag(), true
		}
	}

	return "", false
}

func parseBindError(err error, out interface{}) interface{} {
	rootType := baseStructType(out)

	// validator errors (struct bind tags)
	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		fields := make([]FieldError, 0, len(validationErrors))

		for _, fe := range validationErrors {
			fields = append(fields, FieldError{
				Field:   jsonFieldName(rootType, fe.StructField()),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return gin.H{"fields": fields}
	}

	// in the event of bad json
	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	// in the event of a type mismatch
	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		field := jsonFieldName(rootType, typeError.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
				},
			},
		}
	}

	// final fallback if the error could not be deciphered
	return gin.H{"reason": "unreadable_body"}
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// jsonFieldName maps a Go field name to its json tag. Request bodies here are flat,
// so only the top-level struct is consulted. Names the struct does not know pass through.
func jsonFieldName(rootType reflect.Type, name string) string {
	name = strings.TrimSpace(name)

	if rootType == nil || name == "" {
		return name
	}

	sf, ok := rootType.FieldByName(name)
	if !ok {
		return name
	}

	tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return sf.Name
	}

	return tag
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
