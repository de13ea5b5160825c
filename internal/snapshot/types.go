package snapshot

import (
	"strings"
	"time"

	"github.com/five82/hostsnap/internal/snapname"
)

// DiffStatus is the upstream verdict on a pair of snapshots.
type DiffStatus string

const (
	DiffIdentical DiffStatus = "identical"
	DiffDifferent DiffStatus = "different"
)

// ParseDiffStatus maps a wire verdict onto a DiffStatus. The diff service
// reports either our own vocabulary or the jsondiff match names; only an exact
// match counts as identical.
func ParseDiffStatus(raw string) DiffStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "identical", "fullmatch":
		return DiffIdentical
	default:
		return DiffDifferent
	}
}

// DiffResult is a comparison of two snapshots of the same host. Differences is
// pre-colorized with SGR sequences and may be empty.
type DiffResult struct {
	Status      DiffStatus
	Differences string
}

// Identical reports whether the snapshots matched.
func (d DiffResult) Identical() bool {
	return d.Status == DiffIdentical
}

// diffResponse mirrors /api/snapshot/diff.
type diffResponse struct {
	DiffStatus  string `json:"DiffStatus"`
	Differences string `json:"Differences"`
}

const displayLayout = "2006-01-02 15:04:05 MST"

// ParseTimestamp interprets a backend timestamp. The API speaks RFC3339, while
// uploaded filenames carry the dash-separated form.
func ParseTimestamp(ts string) (time.Time, bool) {
	trimmed := strings.TrimSpace(ts)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return snapname.ParseTimestamp(trimmed)
}

// FormatTimestamp renders ts in the local zone, or returns it unchanged when it
// cannot be parsed.
func FormatTimestamp(ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.Local().Format(displayLayout)
}
