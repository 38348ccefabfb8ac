// Package http exposes the ledger as a JSON API.
//
// This file implements helpers for reading query parameters and request
// bodies.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hisab/internal/core"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

var errBadMonth = errors.New("month must be between 1 and 12")

// MonthParams holds parsed year/month values from request parameters.
type MonthParams struct {
	Year  int
	Month int
}

// ParseMonthParams extracts year and month from query parameters, using the
// month of now as default for absent values.
func ParseMonthParams(query url.Values, now time.Time) (MonthParams, error) {
	params := MonthParams{
		Year:  now.Year(),
		Month: int(now.Month()),
	}

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return MonthParams{}, fmt.Errorf("invalid year %q", v)
		}
		params.Year = y
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return MonthParams{}, fmt.Errorf("invalid month %q", v)
		}
		params.Month = m
	}
	if params.Month < 1 || params.Month > 12 {
		return MonthParams{}, errBadMonth
	}
	return params, nil
}

// ParseDayParam reads ?date=YYYY-MM-DD, defaulting to the day of now.
func ParseDayParam(query url.Values, now time.Time) (core.Date, error) {
	v := strings.TrimSpace(query.Get("date"))
	if v == "" {
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	return core.ParseDate(v)
}

// ParseListQuery reads the type, category and tag filters of a listing.
func ParseListQuery(query url.Values) (core.ListQuery, error) {
	filter, ok := core.ParseTypeFilter(query.Get("type"))
	if !ok {
		return core.ListQuery{}, fmt.Errorf("invalid type filter %q", query.Get("type"))
	}
	return core.ListQuery{
		Type:       filter,
		CategoryID: sanitizeInput(query.Get("category")),
		Tag:        sanitizeInput(query.Get("tag")),
	}, nil
}

// DecodeJSON reads a single JSON object into dst. Unknown fields are
// rejected and the body is capped at maxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// sanitizeInput trims and drops control characters except tab, newline and
// carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
