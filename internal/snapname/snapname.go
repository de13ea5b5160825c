// Package snapname validates snapshot upload filenames.
//
// A snapshot file is named after the host it was captured on and the moment it
// was taken, with colons in the clock replaced by dashes so the name is safe on
// every filesystem:
//
//	host_192.168.1.1_2024-01-15T10-30-00Z.json
//	host_10.0.0.5_2024-01-15T10-30-00.123+02-00.json
package snapname

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Pattern is the human-readable form of the accepted filename grammar.
const Pattern = "host_<ip>_<YYYY-MM-DD>T<HH-MM-SS>[.fraction](Z|±HH-MM).json"

var namePattern = regexp.MustCompile(`^host_((?:\d{1,3}\.){3}\d{1,3})_(\d{4}-\d{2}-\d{2})T(\d{2})-(\d{2})-(\d{2})(\.\d+)?(Z|[+-]\d{2}-\d{2})\.json$`)

var hostPrefix = regexp.MustCompile(`^host_((?:\d{1,3}\.){3}\d{1,3})_`)

// Name is a parsed snapshot filename.
type Name struct {
	Filename  string
	Host      string
	Timestamp string // file-safe form, e.g. 2024-01-15T10-30-00Z
}

// Time parses the timestamp. ok is false when the components do not form a
// real instant (month 13, hour 25 and the like still match the grammar).
func (n Name) Time() (time.Time, bool) {
	return ParseTimestamp(n.Timestamp)
}

// ParseTimestamp parses a file-safe timestamp such as 2024-01-15T10-30-00Z or
// 2024-01-15T10-30-00.5+02-00.
func ParseTimestamp(ts string) (time.Time, bool) {
	date, clock, ok := strings.Cut(ts, "T")
	if !ok || len(clock) < len("15-04-05Z") {
		return time.Time{}, false
	}
	hms := strings.ReplaceAll(clock[:8], "-", ":")
	rest := clock[8:]
	zone := rest
	fraction := ""
	if strings.HasPrefix(rest, ".") {
		i := strings.IndexAny(rest, "Z+-")
		if i < 0 {
			return time.Time{}, false
		}
		fraction, zone = rest[:i], rest[i:]
	}
	if zone != "Z" {
		if len(zone) != len("+02-00") {
			return time.Time{}, false
		}
		zone = zone[:3] + ":" + zone[4:]
	}
	t, err := time.Parse(time.RFC3339Nano, date+"T"+hms+fraction+zone)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidationError reports a filename that does not follow Pattern.
type ValidationError struct {
	Filename string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid snapshot filename %q: %s (expected %s)", e.Filename, e.Reason, Pattern)
}

// Validate checks filename against the snapshot naming grammar. Only the base
// name is considered, so paths are accepted.
func Validate(filename string) (Name, error) {
	base := filepath.Base(filename)
	m := namePattern.FindStringSubmatch(base)
	if m == nil {
		return Name{}, &ValidationError{Filename: base, Reason: reason(base)}
	}
	return Name{
		Filename:  base,
		Host:      m[1],
		Timestamp: m[2] + "T" + m[3] + "-" + m[4] + "-" + m[5] + m[6] + m[7],
	}, nil
}

func reason(base string) string {
	switch {
	case filepath.Ext(base) != ".json":
		return "extension must be .json"
	case !strings.HasPrefix(base, "host_"):
		return "name must start with host_"
	case !hostPrefix.MatchString(base):
		return "host must be an IPv4 address"
	default:
		return "timestamp is malformed"
	}
}
