package snapname

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Accepts(t *testing.T) {
	tests := []struct {
		filename string
		host     string
		ts       string
	}{
		{"host_192.168.1.1_2024-01-15T10-30-00Z.json", "192.168.1.1", "2024-01-15T10-30-00Z"},
		{"host_10.0.0.5_2024-01-15T10-30-00.123+02-00.json", "10.0.0.5", "2024-01-15T10-30-00.123+02-00"},
		{"host_1.2.3.4_1999-12-31T23-59-59-05-00.json", "1.2.3.4", "1999-12-31T23-59-59-05-00"},
		{"/tmp/uploads/host_8.8.8.8_2024-02-29T00-00-00Z.json", "8.8.8.8", "2024-02-29T00-00-00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, err := Validate(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.host, name.Host)
			assert.Equal(t, tt.ts, name.Timestamp)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		filename string
		reason   string
	}{
		{"host_192.168.1.1_2024-01-15_10-30-00.json", "timestamp is malformed"},
		{"notes.json", "name must start with host_"},
		{"host_192.168.1.1_2024-01-15T10-30-00Z.txt", "extension must be .json"},
		{"host_192.168.1.1_2024-01-15T10-30-00Z.json.bak", "extension must be .json"},
		{"host_localhost_2024-01-15T10-30-00Z.json", "host must be an IPv4 address"},
		{"host_192.168.1.1_2024-01-15T10:30:00Z.json", "timestamp is malformed"},
		{"host_192.168.1.1_2024-01-15T10-30-00.json", "timestamp is malformed"},
		{"", "extension must be .json"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			_, err := Validate(tt.filename)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error %T is not *ValidationError", err)
			assert.Equal(t, tt.reason, verr.Reason)
			assert.Contains(t, err.Error(), Pattern)
		})
	}
}

func TestName_Time(t *testing.T) {
	name, err := Validate("host_10.0.0.5_2024-01-15T10-30-00.5+02-00.json")
	require.NoError(t, err)

	got, ok := name.Time()
	require.True(t, ok)
	want := time.Date(2024, 1, 15, 8, 30, 0, 500_000_000, time.UTC)
	assert.True(t, got.Equal(want), "Time() = %v, want %v", got, want)
}

func TestName_TimeOutOfRangeStillValidates(t *testing.T) {
	name, err := Validate("host_10.0.0.5_2024-13-45T99-00-00Z.json")
	require.NoError(t, err)

	_, ok := name.Time()
	assert.False(t, ok)
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp("2024-01-01T00-00-00Z")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	got, ok = ParseTimestamp("2024-01-01T00-00-00-05-00")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)))

	for _, bad := range []string{"", "2024-01-01", "2024-01-01T00-00", "2024-01-01T00-00-00.12", "2024-01-01T00-00-00+0200"} {
		_, ok := ParseTimestamp(bad)
		assert.False(t, ok, "ParseTimestamp(%q)", bad)
	}
}
