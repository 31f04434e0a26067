package util

import (
	"strconv"
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/common"
)

// Params carries string-typed configuration for pluggable implementations.
type Params map[string]string

// String returns the value for key or defaultValue when unset.
func (p Params) String(key, defaultValue string) string {
	value, ok := p[key]
	if !ok {
		return defaultValue
	}
	return value
}

// Bool parses the value for key. Unset keys return defaultValue.
func (p Params) Bool(key string, defaultValue bool) (bool, error) {
	value, ok := p[key]
	if !ok || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, common.Configurationf("parameter %q: %q is not a boolean", key, value)
	}
	return parsed, nil
}

// Float parses the value for key. Unset keys return defaultValue.
func (p Params) Float(key string, defaultValue float64) (float64, error) {
	value, ok := p[key]
	if !ok || value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, common.Configurationf("parameter %q: %q is not a number", key, value)
	}
	return parsed, nil
}

// List splits a comma separated value, trimming blanks. Unset keys return nil.
func (p Params) List(key string) []string {
	value, ok := p[key]
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
