package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/form/v4"

	"github.com/sakif/fyyur/internal/apperror"
)

// maxBodyBytes caps request bodies. Every field set fits in a few KB.
const maxBodyBytes = 1 << 20

// formDecoder fills structs from url.Values by their `form` tags. Repeated
// keys fill a []string in order. It caches struct metadata and is safe for
// concurrent use.
var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(decodeFormBool, false)
	return d
}

// decodeRequest fills dst from either a JSON body or an HTML form post,
// chosen by Content-Type. A missing Content-Type is treated as JSON.
// An empty body leaves dst untouched; the service's validation reports
// whatever is missing.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return apperror.ValidationFailed("", "invalid form body")
		}
		return decodeForm(r.PostForm, dst)

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return apperror.ValidationFailed("", "invalid form body")
		}
		return decodeForm(r.PostForm, dst)

	default:
		return decodeJSON(r.Body, dst)
	}
}

// decodeJSON accepts exactly one JSON value. Trailing data after it is
// rejected.
func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.ValidationFailed("", "invalid JSON body")
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("", "request body must contain a single JSON value")
	}
	return nil
}

func decodeForm(values url.Values, dst any) error {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}

	var fieldErrs form.DecodeErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.ValidationFailed("", "invalid form body")
	}

	// DecodeErrors is a map; report the alphabetically first key so the
	// response is stable.
	keys := make([]string, 0, len(fieldErrs))
	for k := range fieldErrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return apperror.ValidationFailed(keys[0], fmt.Sprintf("%s is invalid", keys[0]))
}

// decodeFormBool accepts what browsers and form libraries send for a
// checked box ("on", "y", "yes") on top of strconv.ParseBool's set.
func decodeFormBool(vals []string) (any, error) {
	s := ""
	if len(vals) > 0 {
		s = vals[0]
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "y", "yes":
		return true, nil
	case "", "off", "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a boolean", s)
	}
	return b, nil
}
