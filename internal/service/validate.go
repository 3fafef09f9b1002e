package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/fyyur/internal/apperror"
	"github.com/sakif/fyyur/internal/model"
)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name ("image_link", not "ImageLink").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateFields runs the struct tags on a field set and converts the first
// failure into apperror.ValidationFailed.
func validateFields(fields any) error {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.ValidationFailed("", err.Error())
	}

	fe := verrs[0]
	return apperror.ValidationFailed(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func trimSpace(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// trimGenres trims each genre. Blank entries survive as "" and fail the
// `dive,required` rule with their index in the field name.
func trimGenres(genres []string) []string {
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = strings.TrimSpace(g)
	}
	return out
}

func normalizeVenue(f *model.VenueFields) {
	trimSpace(&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.Website, &f.FacebookLink, &f.SeekingDescription)
	f.Genres = trimGenres(f.Genres)
}

func normalizeArtist(f *model.ArtistFields) {
	trimSpace(&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.Website, &f.FacebookLink, &f.SeekingDescription)
	f.Genres = trimGenres(f.Genres)
}

// startTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var startTimeLayouts = []string{
	time.RFC3339,
	model.TimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseStartTime reads a submitted start time. An empty value means now.
func parseStartTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), nil
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.ValidationFailed("start_time",
		fmt.Sprintf("start_time %q is not a valid date and time", raw))
}
