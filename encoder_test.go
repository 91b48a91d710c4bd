package hufftree

import (
	"strings"
	"testing"
)

func TestCodeTable_Dump(t *testing.T) {
	table := makeTestTree().CodeTable()

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(a) = \"1100\"\n",
		"\tEncode(b) = \"1101\"\n",
		"\tEncode(c) = \"100\"\n",
		"\tEncode(d) = \"101\"\n",
		"\tEncode(e) = \"111\"\n",
		"\tEncode(f) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestCodeTable_DumpPlaceholder(t *testing.T) {
	table := BuildTree(Frequencies[string]{"a": 4}).CodeTable()

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 1\n",
		"\tEncode(a) = \"0\"\n",
		"\tPlaceholder() = \"1\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
	if table.Len() != 1 {
		t.Errorf("placeholder must not be a table entry, got %d entries", table.Len())
	}
}

func TestCodeTable_IsPrefixFree(t *testing.T) {
	inputs := []string{
		"ab",
		"aaaa",
		"aaabbc",
		"mississippi river",
		"the quick brown fox jumps over the lazy dog",
	}
	for _, input := range inputs {
		table := BuildTree(Count([]byte(input))).CodeTable()
		if !table.IsPrefixFree() {
			var buf strings.Builder
			_, _ = table.Dump(&buf)
			t.Errorf("%q: table is not prefix-free:\n%s", input, buf.String())
		}
	}

	table := CodeTable[string]{codes: map[string]Code{
		"a": MakeCode(1, 0),
		"b": MakeCode(2, 0),
	}}
	if table.IsPrefixFree() {
		t.Errorf("{\"0\", \"00\"} reported as prefix-free")
	}
}

func TestCodeTable_Encode(t *testing.T) {
	type testRow struct {
		input  string
		expect string
	}

	testData := [...]testRow{
		{input: "aaabbc", expect: "000111110"},
		{input: "aaaa", expect: "0000"},
		{input: "ab", expect: "01"},
		{input: "ba", expect: "10"},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			input := []byte(row.input)
			freqs := Count(input)
			table := BuildTree(freqs).CodeTable()

			actual := table.Encode(input)
			if row.expect != actual {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
			if expect, actual := uint64(len(row.expect)), table.EncodedLen(freqs); expect != actual {
				t.Errorf("wrong EncodedLen: expect %d, actual %d", expect, actual)
			}
		})
	}
}

func TestCodeTable_EncodeUnknownSymbol(t *testing.T) {
	table := BuildTree(Count([]byte("ab"))).CodeTable()
	expectPanic(t, "Encode", func() {
		table.Encode([]byte("abc"))
	})
}
