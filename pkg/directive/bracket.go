package directive

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when FindBracketArea is called with
	// unusable symbols or an out of range offset.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMismatch is returned when open and close symbols do not pair up.
	ErrMismatch = errors.New("open and close symbols do not match")
)

// MismatchError reports an open symbol that never gets closed.
// Offset is a byte offset into the scanned string.
type MismatchError struct {
	Offset int
	Open   string
	Close  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("unclosed %q at offset %d (expected %q)", e.Open, e.Offset, e.Close)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// BracketArea holds the byte offsets of a matched open and close symbol.
type BracketArea struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FindBracketArea finds the first open symbol at or after from and the close
// symbol that balances it, skipping over nested pairs.
//
// It returns nil and no error when there is no open symbol left to match.
func FindBracketArea(s, open, close string, from int) (*BracketArea, error) {
	switch {
	case open == "":
		return nil, fmt.Errorf("%w: open symbol is empty", ErrInvalidArgument)
	case close == "":
		return nil, fmt.Errorf("%w: close symbol is empty", ErrInvalidArgument)
	case open == close:
		return nil, fmt.Errorf("%w: open and close symbols are both %q", ErrInvalidArgument, open)
	case from < 0 || from >= len(s):
		return nil, fmt.Errorf("%w: offset %d out of range for length %d", ErrInvalidArgument, from, len(s))
	}

	start := indexFrom(s, open, from)
	if start == -1 {
		return nil, nil
	}

	area := &BracketArea{Start: start, End: -1}
	depth := 1
	cursor := start + len(open)

	// -1 means the candidate has to be looked up again.
	nextOpen, nextClose := -1, -1
	for depth > 0 {
		if nextOpen != -1 && nextOpen < cursor {
			nextOpen = -1
		}
		if nextClose != -1 && nextClose < cursor {
			nextClose = -1
		}
		if nextOpen == -1 {
			nextOpen = indexFrom(s, open, cursor)
		}
		if nextClose == -1 {
			nextClose = indexFrom(s, close, cursor)
		}

		switch {
		case nextClose == -1:
			// Another open cannot balance anything without a close after it.
			return nil, &MismatchError{Offset: start, Open: open, Close: close}
		case nextOpen != -1 && nextOpen < nextClose:
			depth++
			cursor = nextOpen + len(open)
			nextOpen = -1
		default:
			depth--
			area.End = nextClose
			cursor = nextClose + len(close)
			nextClose = -1
		}
	}
	return area, nil
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], substr)
	if i == -1 {
		return -1
	}
	return from + i
}
