package msats

import (
	"testing"

	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

func TestToSatsFloors(t *testing.T) {
	cases := []struct {
		msat int64
		want int64
	}{
		{999, 0},
		{1000, 1},
		{1999, 1},
		{2000, 2},
		{0, 0},
		{-5, 0},
	}
	for _, tc := range cases {
		if got := ToSats(tc.msat); got != tc.want {
			t.Errorf("ToSats(%d) = %d, want %d", tc.msat, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, sats := range []int64{0, 1, 21, 100000, 2100000000} {
		if got := ToSats(ToMsats(sats)); got != sats {
			t.Errorf("round trip %d -> %d", sats, got)
		}
	}
}

func TestParseSats(t *testing.T) {
	sats, err := ParseSats("1500")
	if err != nil {
		t.Fatalf("ParseSats error: %v", err)
	}
	if sats != 1500 {
		t.Fatalf("ParseSats = %d", sats)
	}
}

func TestParseSatsRejections(t *testing.T) {
	for _, input := range []string{"", "0", "-5", "1.5", "abc", "10 sats", "+3"} {
		_, err := ParseSats(input)
		if err == nil {
			t.Errorf("ParseSats(%q) should fail", input)
			continue
		}
		if pkgerrors.CodeOf(err) != pkgerrors.CodeInvalidAmount {
			t.Errorf("ParseSats(%q) code = %s", input, pkgerrors.CodeOf(err))
		}
	}
}
