package loyalty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tillpoint/pos-api/internal/domain/loyalty"
)

func TestPointsFromProfit(t *testing.T) {
	cases := []struct {
		name        string
		profitCents int64
		want        int
	}{
		{"profit 100.00 earns 5", 10000, 5},
		{"profit 20.00 earns exactly 1", 2000, 1},
		{"profit 19.99 floors to 0", 1999, 0},
		{"profit 15.00 floors to 0", 1500, 0},
		{"profit 39.99 floors to 1", 3999, 1},
		{"profit 40.00 earns 2", 4000, 2},
		{"zero profit earns nothing", 0, 0},
		{"negative profit earns nothing", -5000, 0},
		{"large profit", 123456789, 61728},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, loyalty.PointsFromProfit(tc.profitCents))
		})
	}
}
