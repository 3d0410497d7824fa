package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level complaint inside an invalid_request answer.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON binds the request body into out and answers the request itself
// when binding fails, so callers just return on false.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	if err := ctx.ShouldBindJSON(out); err != nil {
		RespondBadRequest(ctx, "Invalid request body", bindDetails(err, out))
		return false
	}

	return true
}

// bindDetails shapes a bind error into the details payload. Fields are
// reported under the names they carry in the JSON body, never as Go
// identifiers.
func bindDetails(err error, out interface{}) interface{} {
	names := jsonNames(out)

	var verrs validator.ValidationErrors

	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))

		for _, fe := range verrs {
			name, ok := names[fe.StructField()]
			if !ok {
				name = fe.Field()
			}

			fields = append(fields, FieldError{
				Field:   name,
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: ruleMessage(fe.Tag(), fe.Param()),
			})
		}

		return gin.H{"fields": fields}
	}

	var typeErr *json.UnmarshalTypeError

	if errors.As(err, &typeErr) {
		// encoding/json already reports the JSON name here
		field := strings.TrimSpace(typeErr.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: fmt.Sprintf("must be of type %s", typeErr.Type),
			}},
		}
	}

	var syntaxErr *json.SyntaxError

	if errors.As(err, &syntaxErr) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var tooLarge *http.MaxBytesError

	if errors.As(err, &tooLarge) {
		return gin.H{"json": "body_too_large"}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return gin.H{"json": "empty_or_truncated_body"}
	}

	return gin.H{"reason": err.Error()}
}

// jsonNames maps Go field names onto json tag names. The request DTOs here
// are flat structs, so no nested paths to chase.
func jsonNames(v interface{}) map[string]string {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	names := make(map[string]string, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			name = f.Name
		}

		names[f.Name] = name
	}

	return names
}

func ruleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + param + " characters"
	case "min":
		return "must be at least " + param + " characters"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
