package model

import (
	"strconv"
	"strings"
	"unicode"
)

type ReviewUser struct {
	FirstName string `json:"first_name"`
}

type Review struct {
	Comment string      `json:"comment"`
	Rating  int         `json:"rating"`
	User    *ReviewUser `json:"user"`
}

// ReviewInput is the body of POST /places/{id}/reviews. A nil Rating is sent
// as null, which is what a non-numeric rating field turns into.
type ReviewInput struct {
	Comment string `json:"comment"`
	Rating  *int   `json:"rating"`
}

// ParseRating reads an integer the way a browser's parseInt does: leading
// whitespace and an optional sign are skipped, an 0x prefix switches to hex,
// and parsing stops at the first character that is not a digit. It returns
// nil when no digits are found or the value does not fit in an int.
func ParseRating(s string) *int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return nil
	}

	n, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil {
		return nil
	}
	v := int(n)
	if neg {
		v = -v
	}
	return &v
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
