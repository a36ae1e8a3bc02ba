package lang

import (
	"strings"
	"testing"
)

func TestParseStatementCached_MatchesUncached(t *testing.T) {
	t.Cleanup(ClearCache)

	const input = "!roll 2d6 + 1"

	want, err := ParseStatement(input)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	got, err := ParseStatementCached(input)
	if err != nil {
		t.Fatalf("cached parse error: %v", err)
	}

	if !statementsEqual(got, want) {
		t.Errorf("cached parse = %#v, want %#v", got, want)
	}

	// Second call must hit the memoized entry and return the same result.
	got2, err := ParseStatementCached(input)
	if err != nil {
		t.Fatalf("second cached parse error: %v", err)
	}

	if !statementsEqual(got2, want) {
		t.Errorf("second cached parse = %#v, want %#v", got2, want)
	}
}

func TestParseStatementCached_MemoizesErrors(t *testing.T) {
	t.Cleanup(ClearCache)

	const input = "!roll 1 +"

	_, err1 := ParseStatementCached(input)
	_, err2 := ParseStatementCached(input)

	if err1 == nil || err2 == nil {
		t.Fatal("expected both calls to fail")
	}

	if err1.Error() != err2.Error() {
		t.Errorf("errors differ across cached calls: %q vs %q", err1, err2)
	}
}

func TestParseReaderCached(t *testing.T) {
	t.Cleanup(ClearCache)

	stmt, err := ParseReaderCached(t.Context(), strings.NewReader("!help"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if !statementsEqual(stmt, Help{}) {
		t.Errorf("got %#v, want Help{}", stmt)
	}
}
