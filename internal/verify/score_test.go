package verify

import "testing"

func TestExtractScore(t *testing.T) {
	cases := []struct {
		reply string
		want  int
	}{
		{"85", 85},
		{"Score: 87/100", 87},
		{"150", 100},
		{"-5", 5},
		{"I would rate this job a 42 out of 100.", 42},
		{"0", 0},
		{"999999999999999999999999", 100},
	}
	for _, tc := range cases {
		got, err := ExtractScore(tc.reply)
		if err != nil {
			t.Fatalf("ExtractScore(%q): %v", tc.reply, err)
		}
		if got != tc.want {
			t.Fatalf("ExtractScore(%q) = %d, want %d", tc.reply, got, tc.want)
		}
	}
}

func TestExtractScoreNoDigits(t *testing.T) {
	for _, reply := range []string{"", "excellent quality", "N/A"} {
		if _, err := ExtractScore(reply); err == nil {
			t.Fatalf("expected error for %q", reply)
		}
	}
}
