package validate

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/baechuer/events-api/internal/domain"
	"github.com/baechuer/events-api/internal/pagination"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return domain.ErrValidation("request body is required")
	}
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return domain.ErrValidationMeta("invalid JSON body", map[string]string{"body": err.Error()})
	}
	return nil
}

// Struct runs the `validate` tags on s.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrValidation(err.Error())
	}

	meta := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		meta[fe.Field()] = formatFieldError(fe)
	}
	return domain.ErrValidationMeta("invalid fields", meta)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

// PageOptions reads ?page= and ?limit=. Missing values fall back to page 1
// and defaultLimit; limits above maxLimit are clamped. Range checks are left
// to pagination.Options.Validate.
func PageOptions(r *http.Request, defaultLimit, maxLimit int, total bool) (pagination.Options, error) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 1, "page")
	if err != nil {
		return pagination.Options{}, err
	}
	limit, err := intParam(q.Get("limit"), defaultLimit, "limit")
	if err != nil {
		return pagination.Options{}, err
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return pagination.Options{Page: page, Limit: limit, Total: total}, nil
}

func intParam(raw string, def int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrBadRequestMeta("invalid query param", map[string]string{name: "must be an integer"})
	}
	return n, nil
}
