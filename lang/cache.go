package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// cacheEntry memoizes a single ParseStatement call.
type cacheEntry struct {
	once sync.Once
	stmt Statement
	err  error
}

// globalCache stores parse results keyed by a content hash of the input
// line. REPL input is short-lived and highly repetitive (the same
// !roll/!set lines get retyped across a session), so memoizing the parse
// step avoids re-running the backtracking parser on input already seen.
var globalCache sync.Map

// ParseStatementCached is ParseStatement with memoization keyed by an xxh3
// hash of input.
func ParseStatementCached(input string) (Statement, error) {
	key := strconv.FormatUint(xxh3.HashString(input), 36)

	entry := new(cacheEntry)
	value, _ := globalCache.LoadOrStore(key, entry)

	e, ok := value.(*cacheEntry)
	if !ok {
		return nil, NewOtherError("invalid cache entry type")
	}

	e.once.Do(func() {
		e.stmt, e.err = ParseStatement(input)
	})

	return e.stmt, e.err
}

// ParseReaderCached reads all of r through an async read-ahead buffer, then
// parses the result with caching.
func ParseReaderCached(ctx context.Context, r io.Reader) (Statement, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, WrapError(err).With(slog.String("source", "reader"))
	}

	return ParseStatementCached(string(data))
}

// ClearCache removes all memoized parse results. Primarily useful for
// testing.
func ClearCache() {
	globalCache = sync.Map{}
}
