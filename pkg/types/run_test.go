package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRunEffectiveDate(t *testing.T) {
	submitted := ts("2021-03-01T10:00:00Z")
	verified := ts("2021-03-02T10:00:00Z")
	performed := ts("2021-02-27T00:00:00Z")

	tests := []struct {
		name string
		run  Run
		want *time.Time
	}{
		{
			name: "submission date wins",
			run: Run{
				Submitted: submitted,
				Date:      performed,
				Status:    RunStatus{VerifyDate: verified},
			},
			want: submitted,
		},
		{
			name: "verification date when never submitted",
			run: Run{
				Date:   performed,
				Status: RunStatus{VerifyDate: verified},
			},
			want: verified,
		},
		{
			name: "occurrence date as last resort",
			run:  Run{Date: performed},
			want: performed,
		},
		{
			name: "nil when the run carries no timestamp at all",
			run:  Run{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.run.EffectiveDate())
		})
	}
}

func TestStatusKindDisplay(t *testing.T) {
	assert.Equal(t, "Verified", StatusVerified.Display())
	assert.Equal(t, "Rejected", StatusRejected.Display())
	assert.Equal(t, "New", StatusNew.Display())
	// Unknown kinds pass through so upstream additions stay visible.
	assert.Equal(t, "weird", StatusKind("weird").Display())
}

func TestRulesetTimes(t *testing.T) {
	r := Ruleset{TimingMethods: []TimingMethod{TimingRealTime, TimingInGame}}
	assert.True(t, r.Times(TimingRealTime))
	assert.True(t, r.Times(TimingInGame))
	assert.False(t, r.Times(TimingRealTimeNoLoads))
}
