package hufftree

import (
	"errors"
	"testing"
)

func TestParseCode(t *testing.T) {
	hc, err := ParseCode("1101")
	if err != nil {
		t.Fatalf("ParseCode failed: %v", err)
	}
	if expect := MakeCode(4, 0xb); expect != hc {
		t.Errorf("expected %#v, got %#v", expect, hc)
	}
	if expect, actual := "1101", hc.Path(); expect != actual {
		t.Errorf("expected path %q, got %q", expect, actual)
	}
	if expect, actual := "\"1101\"", hc.String(); expect != actual {
		t.Errorf("expected string %s, got %s", expect, actual)
	}

	if _, err := ParseCode("10a"); !errors.Is(err, ErrInvalidBit) {
		t.Errorf("expected ErrInvalidBit, got %v", err)
	}

	long := make([]byte, maxBitsPerCode+1)
	for index := range long {
		long[index] = '1'
	}
	if _, err := ParseCode(string(long)); err == nil {
		t.Errorf("expected an error for a %d-bit code", len(long))
	}
}

func TestCode_HasPrefix(t *testing.T) {
	type testRow struct {
		code   string
		prefix string
		expect bool
	}

	testData := [...]testRow{
		{code: "1101", prefix: "", expect: true},
		{code: "1101", prefix: "1", expect: true},
		{code: "1101", prefix: "11", expect: true},
		{code: "1101", prefix: "1101", expect: true},
		{code: "1101", prefix: "10", expect: false},
		{code: "1101", prefix: "0", expect: false},
		{code: "1101", prefix: "11010", expect: false},
		{code: "0", prefix: "00", expect: false},
	}
	for _, row := range testData {
		t.Run(row.code+"/"+row.prefix, func(t *testing.T) {
			hc, _ := ParseCode(row.code)
			prefix, _ := ParseCode(row.prefix)
			if actual := hc.HasPrefix(prefix); row.expect != actual {
				t.Errorf("expected %v, got %v", row.expect, actual)
			}
		})
	}
}

func TestLog2Ceil(t *testing.T) {
	testData := map[uint64]uint64{
		1:   1,
		2:   1,
		3:   2,
		4:   2,
		5:   3,
		256: 8,
		257: 9,
	}
	for x, expect := range testData {
		if actual := log2ceil(x); expect != actual {
			t.Errorf("log2ceil(%d): expected %d, got %d", x, expect, actual)
		}
	}
}
