package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvictionInterval(t *testing.T) {
	cases := []struct {
		name    string
		idleTTL time.Duration
		want    time.Duration
	}{
		{"half of the idle ttl", 30 * time.Minute, 15 * time.Minute},
		{"tiny ttl is floored", time.Nanosecond, minEvictionInterval},
		{"ttl just under the floor", 1500 * time.Millisecond, minEvictionInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, evictionInterval(tc.idleTTL))
		})
	}
}
