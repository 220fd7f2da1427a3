package main

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	Validate    *validator.Validate
	formDecoder *schema.Decoder
)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their form names ("yelp_id") rather than Go names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("schema"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	formDecoder = schema.NewDecoder()
	// forms still post the legacy total_ratings/total_votes echo and _method
	formDecoder.IgnoreUnknownKeys(true)
}

// readForm parses a urlencoded body into dst and validates it.
func readForm(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return formDecodeError(err)
	}

	if err := Validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func formDecodeError(err error) error {
	var multi schema.MultiError
	if errors.As(err, &multi) {
		fields := make([]string, 0, len(multi))
		for field := range multi {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return fmt.Errorf("invalid value for %s", strings.Join(fields, ", "))
	}
	return fmt.Errorf("invalid form: %w", err)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "latitude", "longitude":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
