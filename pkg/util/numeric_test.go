package util

import (
	"strings"
	"testing"
)

func TestParseNumericFloat(t *testing.T) {
	if got := ParseNumeric(5.25); got != 5.25 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestParseNumericCommaString(t *testing.T) {
	if got := ParseNumeric("5,25"); got != 5.25 {
		t.Fatalf("unexpected %v", got)
	}
	if got := ParseNumeric("1,5"); got != 1.5 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestParseNumericDotString(t *testing.T) {
	if got := ParseNumeric("5.25"); got != 5.25 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestParseNumericCommaEqualsDot(t *testing.T) {
	cases := []string{"5,25", "-0,5", "1234,0", "0,001"}
	for _, s := range cases {
		if ParseNumeric(s) != ParseNumeric(strings.Replace(s, ",", ".", 1)) {
			t.Fatalf("comma/dot mismatch for %q", s)
		}
	}
}

func TestParseNumericGarbage(t *testing.T) {
	if got := ParseNumeric("abc"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ParseNumeric(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ParseNumeric(map[string]string{}); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestParseNumericOptional(t *testing.T) {
	if got := ParseNumericOptional(nil); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	if got := ParseNumericOptional(""); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	got := ParseNumericOptional("4,80")
	if got == nil || *got != 4.8 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestIsCurrencyCode(t *testing.T) {
	if !IsCurrencyCode("USD") || !IsCurrencyCode("eur") {
		t.Fatalf("expected valid")
	}
	if IsCurrencyCode("US") || IsCurrencyCode("USDT") || IsCurrencyCode("U$D") {
		t.Fatalf("expected invalid")
	}
}
