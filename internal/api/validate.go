package api

import (
	"encoding/json" // Decode error types
	"errors"        // Error inspection
	"fmt"           // Message formatting
	"io"            // Empty body detection
	"reflect"       // Struct tag lookup
	"strconv"       // Path and query ids
	"strings"       // Trimming
	"sync"          // One-time validator setup
	"time"          // Date and time parsing

	"vet_clinic/internal/domain"   // Entity model
	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Store errors

	"github.com/gin-gonic/gin"                                       // Gin web framework
	"github.com/gin-gonic/gin/binding"                               // Request binding
	"github.com/go-playground/validator/v10"                         // Binding validation
	"github.com/go-playground/validator/v10/non-standard/validators" // notblank
	"github.com/sirupsen/logrus"                                     // Structured logging
)

// Messages for malformed schedule fields
const (
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime = "invalid time format, expected HH:MM"
)

var setupValidator sync.Once

// registerValidation makes binding errors name JSON fields and adds the
// notblank tag, which rejects whitespace-only strings.
func registerValidation() {
	setupValidator.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}

// bindJSON decodes and validates the body into dst, answering 400 on failure
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, bindMessage(err))
		return false
	}
	return true
}

func bindMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.Is(err, io.EOF):
		return "request body must be a JSON object"
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "request body must be a JSON object"
		}
		return fmt.Sprintf("field '%s' must be %s", typeErr.Field, jsonKind(typeErr.Type))
	case errors.As(err, &syntaxErr):
		return "malformed JSON body"
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		return fieldMessage(fieldErrs[0])
	}
	return "invalid request body"
}

// jsonKind names the JSON value expected for t
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	}
	return "of a different type"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return requiredMessage(fe.Field())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("field '%s' is invalid", fe.Field())
}

func requiredMessage(field string) string {
	return fmt.Sprintf("field '%s' is required", field)
}

func emptyMessage(field string) string {
	return fmt.Sprintf("field '%s' cannot be empty", field)
}

// validationError is a 400 raised while checking a partial update
type validationError string

func (e validationError) Error() string { return string(e) }

// notEmpty rejects a present required string field that is null or blank
func notEmpty(field string, o domain.Optional[string]) error {
	if o.Set && (o.Null || strings.TrimSpace(o.Value) == "") {
		return validationError(emptyMessage(field))
	}
	return nil
}

// notNull rejects a present required field sent as null
func notNull[T any](field string, o domain.Optional[T]) error {
	if o.Set && o.Null {
		return validationError(emptyMessage(field))
	}
	return nil
}

// firstError unwraps the first of a joined set of field errors
func firstError(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			return errs[0]
		}
	}
	return err
}

// trimmed returns o with a trimmed value
func trimmed(o domain.Optional[string]) domain.Optional[string] {
	if o.HasValue() {
		o.Value = strings.TrimSpace(o.Value)
	}
	return o
}

// blankToNil drops a nullable string that carries only whitespace
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// parseDate parses a calendar day in YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, validationError(msgInvalidDate)
	}
	return d, nil
}

// parseClock parses a 24-hour HH:MM time and returns it zero-padded
func parseClock(s string) (string, error) {
	t, err := time.Parse(domain.TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return "", validationError(msgInvalidTime)
	}
	return t.Format(domain.TimeLayout), nil
}

// parseBound parses a report bound given as YYYY-MM-DD or RFC 3339. A
// date-only end bound is moved to the start of the next day and reported
// as exclusive so the whole day is covered.
func parseBound(name, s string, end bool) (*time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, false, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, false, validationError(fmt.Sprintf("invalid %s, expected YYYY-MM-DD or RFC 3339", name))
	}
	if end {
		d = d.AddDate(0, 0, 1)
		return &d, true, nil
	}
	return &d, false, nil
}

// queryRange reads start_date and end_date
func queryRange(c *gin.Context) (store.Range, error) {
	from, _, err := parseBound("start_date", c.Query("start_date"), false)
	if err != nil {
		return store.Range{}, err
	}
	to, exclusive, err := parseBound("end_date", c.Query("end_date"), true)
	if err != nil {
		return store.Range{}, err
	}
	return store.Range{From: from, To: to, ToExclusive: exclusive}, nil
}

// queryID reads an optional numeric query parameter
func queryID(c *gin.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, validationError(fmt.Sprintf("invalid %s", name))
	}
	id := uint(n)
	return &id, nil
}

// pathID reads the :id segment; a non-numeric id matches no resource
func pathID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		response.NotFound(c, "Not found")
		return 0, false
	}
	return uint(n), true
}

// respondError maps validation and store errors onto the envelope. notFound
// names the missing resource.
func respondError(c *gin.Context, err error, notFound string) {
	var vErr validationError
	var conflict *store.ConflictError
	var ref *store.ReferenceError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, vErr.Error())
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, notFound)
	case errors.Is(err, store.ErrServiceInUse):
		response.BadRequest(c, "Cannot delete the service because it is referenced by existing appointments")
	case errors.As(err, &conflict):
		response.BadRequest(c, conflict.Error())
	case errors.As(err, &ref):
		response.BadRequest(c, ref.Error())
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("Request failed")
		response.Internal(c)
	}
}

// views projects every item
func views[T, V any](items []T, view func(*T) V) []V {
	out := make([]V, 0, len(items))
	for i := range items {
		out = append(out, view(&items[i]))
	}
	return out
}
