package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklistTTLDays(t *testing.T) {
	cases := []struct {
		name string
		env  string
		want int
	}{
		{"default saat kosong", "", 7},
		{"pakai nilai env", "30", 30},
		{"bukan angka jatuh ke default", "banyak", 7},
		{"nol jatuh ke default", "0", 7},
		{"negatif jatuh ke default", "-3", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TOKEN_BLACKLIST_TTL_DAYS", tc.env)
			assert.Equal(t, tc.want, blacklistTTLDays())
		})
	}
}
