package durationx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"12h", 12 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1s", time.Second},
		{"365d", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "m", "15", "15x", "1.5h", "-2m", "0s", " 5m", "5m ", "5ms"} {
		_, err := Parse(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var cfg struct {
		TTL Duration `json:"ttl"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":"7d"}`), &cfg))
	assert.Equal(t, 7*24*time.Hour, time.Duration(cfg.TTL))

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":1000000000}`), &cfg))
	assert.Equal(t, time.Second, time.Duration(cfg.TTL))

	assert.Error(t, json.Unmarshal([]byte(`{"ttl":"soon"}`), &cfg))
	assert.Error(t, json.Unmarshal([]byte(`{"ttl":true}`), &cfg))
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("15m")))
	assert.Equal(t, "15m0s", d.String())
}
