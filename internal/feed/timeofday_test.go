package feed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fanpulse/internal/core"
	"fanpulse/internal/feed"
)

func TestTimePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour int
		want core.TimeOfDay
	}{
		{0, core.TimeNight},
		{5, core.TimeNight},
		{6, core.TimeMorning},
		{11, core.TimeMorning},
		{12, core.TimeAfternoon},
		{16, core.TimeAfternoon},
		{17, core.TimeEvening},
		{21, core.TimeEvening},
		{22, core.TimeNight},
		{23, core.TimeNight},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, feed.TimePreference(tt.hour), "hour %d", tt.hour)
	}
}

func TestTimePreferenceCoversEveryHour(t *testing.T) {
	t.Parallel()

	for hour := 0; hour < 24; hour++ {
		require.NotEmpty(t, feed.TimePreference(hour))
	}
}
