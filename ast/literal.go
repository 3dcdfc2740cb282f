package ast

import (
	"errors"
	"strconv"
	"strings"
)

// Errors returned by DecodeLiteral.
var (
	ErrMalformedNumber = errors.New("malformed number")
	ErrIntegerRange    = errors.New("integer out of range")
	ErrMalformedByte   = errors.New("malformed byte literal")
	ErrMalformedString = errors.New("malformed string literal")
	ErrMalformedSymbol = errors.New("malformed symbol")
)

// DecodeLiteral returns the Value payload for a token of kind tt scanned from
// text: int64 or float64 for NUMBER, byte for BYTE, the unquoted text for
// STRING and the name without '#' for SYMBOL. Every other kind decodes to
// text itself.
func DecodeLiteral(tt TokenType, text string) (any, error) {
	switch tt {
	case NUMBER:
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, ErrMalformedNumber
			}
			return f, nil
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, ErrIntegerRange
			}
			return nil, ErrMalformedNumber
		}
		return i, nil
	case BYTE:
		if len(text) != 3 || text[0] != 'x' {
			return nil, ErrMalformedByte
		}
		b, err := strconv.ParseUint(text[1:], 16, 8)
		if err != nil {
			return nil, ErrMalformedByte
		}
		return byte(b), nil
	case STRING:
		if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
			return nil, ErrMalformedString
		}
		return strings.ReplaceAll(text[1:len(text)-1], `""`, `"`), nil
	case SYMBOL:
		if len(text) < 2 || text[0] != '#' {
			return nil, ErrMalformedSymbol
		}
		return text[1:], nil
	}
	return text, nil
}
