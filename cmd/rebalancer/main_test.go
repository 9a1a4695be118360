package main

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "weekday before slot fires same day",
			now:  time.Date(2024, 1, 3, 9, 0, 0, 0, loc), // Wednesday
			want: time.Date(2024, 1, 3, 16, 0, 0, 0, loc),
		},
		{
			name: "weekday after slot rolls to next day",
			now:  time.Date(2024, 1, 3, 17, 0, 0, 0, loc),
			want: time.Date(2024, 1, 4, 16, 0, 0, 0, loc),
		},
		{
			name: "friday evening rolls to monday",
			now:  time.Date(2024, 1, 5, 16, 30, 0, 0, loc), // Friday
			want: time.Date(2024, 1, 8, 16, 0, 0, 0, loc),  // Monday
		},
		{
			name: "saturday rolls to monday",
			now:  time.Date(2024, 1, 6, 10, 0, 0, 0, loc),
			want: time.Date(2024, 1, 8, 16, 0, 0, 0, loc),
		},
		{
			name: "exactly at slot rolls forward",
			now:  time.Date(2024, 1, 3, 16, 0, 0, 0, loc),
			want: time.Date(2024, 1, 4, 16, 0, 0, 0, loc),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextRun(tc.now, 16, 0)
			if !got.Equal(tc.want) {
				t.Errorf("nextRun(%s) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}
