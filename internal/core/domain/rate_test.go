package domain

import "testing"

func TestParseRate(t *testing.T) {
	cases := []struct {
		raw    string
		count  int64
		period int64
	}{
		{"3/1m", 3, 60},
		{"10/s", 10, 1},
		{"10/", 10, 1},
		{"100/m", 100, 60},
		{"5/2h", 5, 2 * 60 * 60},
		{"1/d", 1, 24 * 60 * 60},
		{"0/30s", 0, 30},
	}

	for _, tc := range cases {
		spec, err := ParseRate(tc.raw)
		if err != nil {
			t.Fatalf("ParseRate(%q) returned error: %v", tc.raw, err)
		}
		if spec.Count != tc.count || spec.Period != tc.period {
			t.Fatalf("ParseRate(%q) = %+v, want count=%d period=%d", tc.raw, spec, tc.count, tc.period)
		}
	}
}

func TestParseRate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "5", "/m", "3/1w", "3/m extra", "-1/m", "3/0s"} {
		if _, err := ParseRate(raw); err == nil {
			t.Fatalf("ParseRate(%q) should fail", raw)
		} else if !IsConfigurationError(err) {
			t.Fatalf("ParseRate(%q) error should be a configuration error, got %v", raw, err)
		}
	}
}

func TestRateSpec_CanonicalString(t *testing.T) {
	a, err := ParseRate("3/1m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseRate("3/60s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("equivalent specs must serialize identically: %q vs %q", a, b)
	}
	if a.String() != "3/60s" {
		t.Fatalf("canonical form should be count/periodSeconds, got %q", a)
	}
}

func TestParseLockDuration(t *testing.T) {
	cases := []struct {
		raw     string
		seconds int64
	}{
		{"10s", 10},
		{"s", 1},
		{"5", 5},
		{"2m", 120},
		{"1h", 60 * 60},
		{"1d", 24 * 60 * 60},
		{"0s", 0},
	}

	for _, tc := range cases {
		seconds, err := ParseLockDuration(tc.raw)
		if err != nil {
			t.Fatalf("ParseLockDuration(%q) returned error: %v", tc.raw, err)
		}
		if seconds != tc.seconds {
			t.Fatalf("ParseLockDuration(%q) = %d, want %d", tc.raw, seconds, tc.seconds)
		}
	}
}

func TestParseLockDuration_Invalid(t *testing.T) {
	for _, raw := range []string{"", "x", "10w", "m10"} {
		if _, err := ParseLockDuration(raw); err == nil {
			t.Fatalf("ParseLockDuration(%q) should fail", raw)
		} else if !IsConfigurationError(err) {
			t.Fatalf("ParseLockDuration(%q) error should be a configuration error, got %v", raw, err)
		}
	}
}
