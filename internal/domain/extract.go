package domain

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

const (
	preOpenMarker   = "<pre"
	bodyCloseMarker = "</body>"
)

// noisePrefixes start table rules, header underlines and footnote markers.
const noisePrefixes = "+#*=-"

// noiseKeywords mark annotation rows and marks not comparable with the main list.
var noiseKeywords = []string{"indoor", "oversized", "intermediate"}

// Extract isolates the preformatted block of a ranking page and yields its
// candidate data lines: trimmed, non-empty and not recognisably noise.
//
// The block runs from the first <pre> tag to the first </body> tag (or the end
// of the markup). HTML entities are decoded before splitting. The returned
// sequence reads the source text once, lazily.
func Extract(markup string) (iter.Seq[string], error) {
	start := indexPreTag(markup)
	if start < 0 {
		return nil, &ParseError{Kind: NoDataBlock, Detail: "missing <pre> block"}
	}
	body := markup[start+len(preOpenMarker):]
	if gt := strings.IndexByte(body, '>'); gt >= 0 {
		body = body[gt+1:]
	}
	if end := indexFold(body, bodyCloseMarker); end >= 0 {
		body = body[:end]
	}

	text := html.UnescapeString(body)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			line = strings.TrimSpace(line)
			if !isCandidateLine(line) {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// indexPreTag returns the offset of the first <pre> start tag. Tags that only
// share the prefix, such as <prefix> or <preview>, are skipped.
func indexPreTag(markup string) int {
	for off := 0; off < len(markup); {
		i := indexFold(markup[off:], preOpenMarker)
		if i < 0 {
			return -1
		}
		i += off
		if end := i + len(preOpenMarker); end < len(markup) && isTagNameEnd(markup[end]) {
			return i
		}
		off = i + len(preOpenMarker)
	}
	return -1
}

func isTagNameEnd(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isCandidateLine(line string) bool {
	if line == "" {
		return false
	}
	if strings.IndexByte(noisePrefixes, line[0]) >= 0 {
		return false
	}
	for _, kw := range noiseKeywords {
		if indexFold(line, kw) >= 0 {
			return false
		}
	}
	return true
}

// indexFold is strings.Index with ASCII case folding. Unlike lowering the whole
// input first, it keeps byte offsets valid for the original string.
func indexFold(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
