package fans_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fanpulse/internal/core"
	"fanpulse/internal/fans"
)

func TestPriorityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tier    string
		hasTier bool
		level   core.SubscriptionLevel
		want    float64
	}{
		{"no status, free plan", "", false, core.SubscriptionFree, 10},
		{"new fan", "new", true, core.SubscriptionFree, 30},
		{"active fan", "active", true, core.SubscriptionFree, 40},
		{"loyal fan", "loyal", true, core.SubscriptionFree, 50},
		{"superfan tier", "superfan", true, core.SubscriptionFree, 70},
		{"diehard fan", "diehard", true, core.SubscriptionFree, 90},
		{"diehard with superfan plan", "diehard", true, core.SubscriptionSuperfan, 140},
		{"no status with superfan plus plan", "", false, core.SubscriptionSuperfanPlus, 110},
		{"unknown tier name scores like no status", "legend", true, core.SubscriptionFree, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, fans.PriorityScore(tt.tier, tt.hasTier, tt.level))
		})
	}
}
