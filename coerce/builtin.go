package coerce

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

const (
	String   = "str"
	Int      = "int"
	Float    = "float"
	Bool     = "bool"
	Duration = "duration"
	Bytes    = "bytes"
	UUID     = "uuid"
	Semver   = "semver"
	URL      = "url"
)

func builtins() map[string]Func {
	return map[string]Func{
		String:   parseString,
		"string": parseString,
		Int:      parseInt,
		Float:    parseFloat,
		Bool:     parseBool,
		Duration: parseDuration,
		Bytes:    parseBytes,
		UUID:     parseUUID,
		Semver:   parseSemver,
		URL:      parseURL,
	}
}

func parseString(s string) (any, error) {
	return s, nil
}

func parseInt(s string) (any, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %w", err)
	}
	return int(v), nil
}

func parseFloat(s string) (any, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %w", err)
	}
	return v, nil
}

func parseBool(s string) (any, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return nil, fmt.Errorf("not a boolean: '%s'", s)
	}
}

func parseDuration(s string) (any, error) {
	return time.ParseDuration(s)
}

func parseBytes(s string) (any, error) {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseUUID(s string) (any, error) {
	return uuid.Parse(s)
}

func parseSemver(s string) (any, error) {
	return semver.NewVersion(s)
}

func parseURL(s string) (any, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("url '%s' has no scheme", s)
	}
	return u, nil
}
