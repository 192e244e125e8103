package jsonpatch

import (
	"fmt"
	"strings"

	"github.com/agentflare-ai/jsonpointer"
)

// appendToken is the final segment of an add that appends to an array.
const appendToken = "-"

// Pointer is a parsed JSON Pointer (RFC 6901). Segments are kept as
// unescaped strings; whether one names an array index is decided where it is
// used.
type Pointer []string

var unescaper = strings.NewReplacer("~1", "/", "~0", "~")

// ParsePointer parses the string form of a pointer. The empty string
// addresses the whole document. A "~" not followed by "0" or "1" is kept
// literally, so "/k~2" names the key "k~2".
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return Pointer{}, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrPointerSyntax, s)
	}
	segments := strings.Split(s[1:], "/")
	for i, seg := range segments {
		segments[i] = unescapeSegment(seg)
	}
	return Pointer(segments), nil
}

// unescapeSegment replaces "~1" before "~0", so "~01" decodes to "~1".
func unescapeSegment(seg string) string {
	if !strings.Contains(seg, "~") {
		return seg
	}
	return unescaper.Replace(seg)
}

// String returns the escaped string form of p.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	return jsonpointer.Pointer(p).String()
}

// IsPrefixOf reports whether every segment of p matches the leading segments
// of other. A pointer is a prefix of itself.
func (p Pointer) IsPrefixOf(other Pointer) bool {
	if len(other) < len(p) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// prefix returns the string form of the first n segments, for error
// messages.
func (p Pointer) prefix(n int) string {
	return p[:n].String()
}

// parseIndex parses an array index: decimal digits with an optional leading
// "-". Leading zeros are allowed. A negative index is out of range.
func parseIndex(seg string) (int, error) {
	digits := strings.TrimPrefix(seg, "-")
	if digits == "" {
		return 0, fmt.Errorf("%w: %q is not an array index", ErrPointerSyntax, seg)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not an array index", ErrPointerSyntax, seg)
		}
	}
	if len(digits) != len(seg) {
		return 0, fmt.Errorf("%w: array index %s is negative", ErrIndexOutOfRange, seg)
	}
	// Leading zeros are stripped first; ParseArrayIndex follows RFC 6901.
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return 0, nil
	}
	idx, err := jsonpointer.ParseArrayIndex(trimmed)
	if err != nil || idx > uint64(maxIndex) {
		return 0, fmt.Errorf("%w: array index %s is too large", ErrIndexOutOfRange, seg)
	}
	return int(idx), nil
}

const maxIndex = int(^uint(0) >> 1)
