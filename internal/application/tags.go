package application

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
)

// TagParser decodes tag lists that arrive either as a JSON array or as a
// JSON-encoded string holding one (multipart form fields).
//
// Strict parsing rejects malformed input with a ValidationError. Lenient
// parsing turns it into an empty list and logs a warning instead.
type TagParser struct {
	Lenient bool
	Logger  *logrus.Logger
}

// Parse accepts raw JSON: `["a","b"]`, `"[\"a\",\"b\"]"`, `null` or nothing.
func (p TagParser) Parse(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return p.fail(string(raw), err)
		}
		return p.ParseString(s)
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return p.fail(string(raw), err)
	}
	return cleanTags(tags), nil
}

// ParseString handles the form-field encoding: a JSON array in a string.
func (p TagParser) ParseString(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return p.fail(s, err)
	}
	return cleanTags(tags), nil
}

func (p TagParser) fail(input string, err error) ([]string, error) {
	if !p.Lenient {
		return nil, apperr.Invalid("tags", "must be a JSON array of strings")
	}
	if p.Logger != nil {
		p.Logger.WithError(err).WithField("input", input).Warn("malformed tags dropped")
	}
	return []string{}, nil
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
