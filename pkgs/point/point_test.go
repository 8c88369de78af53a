package point

import "testing"

func TestToMinutesExamples(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"30", 30},
		{"1.0", 60},
		{"0.1.30", 90},
		{"-1.30", -90},
		{"30.0.0", 43200},
	}

	for _, c := range cases {
		got, err := ToMinutes(c.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q): unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToMinutesErrors(t *testing.T) {
	bad := []string{"", "-", "1..2", ".5", "1.2.3.4.5.6", "1.a", "1.-2"}
	for _, in := range bad {
		if _, err := ToMinutes(in); err == nil {
			t.Errorf("ToMinutes(%q): expected error, got none", in)
		}
	}
}

func TestFromMinutesCanonical(t *testing.T) {
	if got := FromMinutes(90); got != "0.1.30" {
		t.Errorf("FromMinutes(90) = %q, want %q", got, "0.1.30")
	}
	if got := FromMinutes(30); got != "30" {
		t.Errorf("FromMinutes(30) = %q, want %q", got, "30")
	}
	if got := FromMinutes(60); got != "1.0" {
		t.Errorf("FromMinutes(60) = %q, want %q", got, "1.0")
	}
	if got := FromMinutes(0); got != "0" {
		t.Errorf("FromMinutes(0) = %q, want %q", got, "0")
	}
	if got := FromMinutes(-90); got != "-0.1.30" {
		t.Errorf("FromMinutes(-90) = %q, want %q", got, "-0.1.30")
	}
}

func TestRoundTrip(t *testing.T) {
	samples := []int64{0, 1, -1, 30, 60, 90, 43200, 518400, 1_000_000_000, -1_000_000_000, 123456789}
	for _, n := range samples {
		s := FromMinutes(n)
		got, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("ToMinutes(FromMinutes(%d)) = error: %v", n, err)
		}
		if got != n {
			t.Errorf("round trip for %d: got %q -> %d", n, s, got)
		}
	}
}
