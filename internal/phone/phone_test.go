package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0812345678", "+66812345678"},
		{"081-234-5678", "+66812345678"},
		{"081 234 5678", "+66812345678"},
		{"(081) 234.5678", "+66812345678"},
		{"+66812345678", "+66812345678"},
		{"66812345678", "+66812345678"},
		{"660812345678", "+66812345678"}, // country code plus trunk zero
		{"0066812345678", "+66812345678"},
		{"038123456", "+6638123456"}, // 9-digit landline
		{"+12025550123", "+12025550123"},
		{"12025550123", "12025550123"}, // no plus on input, none on output
		{"  0812345678  ", "+66812345678"},
		{"", ""},
		{"   ", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"0812345678", "+66812345678", "66812345678", "0066812345678",
		"+12025550123", "12025550123", "038123456", "",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"+66812345678", "66812345678", "12345678", "+12025550123"}
	for _, v := range valid {
		if !IsValid(v) {
			t.Errorf("IsValid(%q) = false, want true", v)
		}
	}
	invalid := []string{"", "1234567", "+", "+123456789012345678901", "081-234"}
	for _, v := range invalid {
		if IsValid(v) {
			t.Errorf("IsValid(%q) = true, want false", v)
		}
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("081-234-5678")
	want := []string{"+66812345678", "0812345678", "66812345678"}
	if len(got) != len(want) {
		t.Fatalf("Candidates returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Candidates returned %v, want %v", got, want)
		}
	}
}

func TestCandidatesContainNormalized(t *testing.T) {
	inputs := []string{"0812345678", "+66 81 234 5678", "66812345678", "12025550123"}
	for _, in := range inputs {
		norm := Normalize(in)
		found := false
		for _, c := range Candidates(in) {
			if c == norm {
				found = true
			}
		}
		if !found {
			t.Errorf("Candidates(%q) = %v does not contain Normalize(%q) = %q", in, Candidates(in), in, norm)
		}
	}
}

// Every candidate of a +66 number that itself normalizes must normalize back
// to the same canonical value, so a lookup by any spelling finds the booking.
func TestCandidatesNormalizeToSameCanonical(t *testing.T) {
	in := "081 234 5678"
	norm := Normalize(in)
	for _, c := range Candidates(in) {
		if cn := Normalize(c); cn != "" && cn != norm {
			t.Errorf("candidate %q normalizes to %q, want %q", c, cn, norm)
		}
	}
}

func TestCandidatesEmptyInput(t *testing.T) {
	if got := Candidates("   "); got != nil {
		t.Errorf("Candidates(blank) = %v, want nil", got)
	}
}
