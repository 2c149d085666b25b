// Package dict loads the recognition character dictionary and exposes
// it with the CTC blank/space layout baked in, so decode never needs an
// external index shift.
package dict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// blankToken is the placeholder occupying index 0. It is never looked
// up by rune and never emitted by decode.
const blankToken = "<blank>"

// spaceToken is appended after every file-provided token.
const spaceToken = " "

// Charset is an ordered token table with index 0 reserved for the CTC
// blank label, the dictionary file's tokens at indices 1..N, and a
// trailing space token at index N+1.
type Charset struct {
	tokens       []string
	tokenToIndex map[string]int
}

// Load reads a dictionary file where each non-empty line is one token,
// normalizes it to NFC, and builds the blank/tokens/space layout.
func Load(path string) (*Charset, error) {
	if path == "" {
		return nil, errors.New("dictionary path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // caller-provided model directory path
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	tokens := make([]string, 0, 512)
	tokens = append(tokens, blankToken)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens = append(tokens, norm.NFC.String(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if len(tokens) == 1 {
		return nil, fmt.Errorf("dictionary has no tokens: %s", path)
	}
	tokens = append(tokens, spaceToken)

	return newCharset(tokens), nil
}

func newCharset(tokens []string) *Charset {
	toIdx := make(map[string]int, len(tokens))
	for i, t := range tokens {
		if i == 0 {
			continue // blank is never looked up by rune
		}
		if _, ok := toIdx[t]; !ok {
			toIdx[t] = i
		}
	}
	return &Charset{tokens: tokens, tokenToIndex: toIdx}
}

// Size returns the total number of indices, including blank and the
// trailing space (N+2 where N is the file's token count).
func (c *Charset) Size() int { return len(c.tokens) }

// BlankIndex is always 0.
func (c *Charset) BlankIndex() int { return 0 }

// Token returns the token at idx, or "" if idx is the blank index or
// out of range. Decode must skip blank before calling this.
func (c *Charset) Token(idx int) string {
	if c == nil || idx <= 0 || idx >= len(c.tokens) {
		return ""
	}
	return c.tokens[idx]
}

// Index returns the index of a token, or -1 if it is not present.
func (c *Charset) Index(token string) int {
	if c == nil {
		return -1
	}
	if idx, ok := c.tokenToIndex[token]; ok {
		return idx
	}
	return -1
}
