package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var integerLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)$`)

// ParamString coerces a caller-supplied JSON value into the string that is
// validated and forwarded upstream.
//
// Strings yield their decoded content. Integer numbers yield their decimal
// literal. Other numbers yield a float rendering that always carries a '.' or
// an exponent. Anything else yields its compact JSON text.
func ParamString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case c == '-' || (c >= '0' && c <= '9'):
		lit := string(trimmed)
		if integerLiteral.MatchString(lit) {
			return lit
		}
		if f, err := strconv.ParseFloat(lit, 64); err == nil || f != 0 {
			return formatFloat(f)
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
