package equation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrorKind classifies a ParseError.
type ErrorKind uint8

const (
	MalformedEquation ErrorKind = iota + 1
	InvalidTerm
	TooManyPieces
)

var (
	ErrMalformedEquation = errors.New("malformed equation")
	ErrInvalidTerm       = errors.New("invalid term")
	ErrTooManyPieces     = errors.New("too many pieces")
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedEquation:
		return "malformed_equation"
	case InvalidTerm:
		return "invalid_term"
	case TooManyPieces:
		return "too_many_pieces"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedEquation:
		return ErrMalformedEquation
	case InvalidTerm:
		return ErrInvalidTerm
	case TooManyPieces:
		return ErrTooManyPieces
	default:
		return nil
	}
}

// ParseError reports text that does not describe a linear equation.
type ParseError struct {
	Kind   ErrorKind
	Input  string
	Detail string
}

func (e *ParseError) Error() string {
	msg := "parse error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s in %q", msg, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Kind.sentinel() }

// ParseEquation parses "left = right". Exactly one '=' is required, and the
// equation must lay out in at most MaxPieces pieces.
func ParseEquation(text string) (Equation, error) {
	parts := strings.Split(text, "=")
	if len(parts) != 2 {
		return Equation{}, &ParseError{
			Kind:   MalformedEquation,
			Input:  text,
			Detail: fmt.Sprintf("expected exactly one '=', found %d", len(parts)-1),
		}
	}

	aL, bL, err := ParseSide(strings.TrimSpace(parts[0]))
	if err != nil {
		return Equation{}, err
	}
	aR, bR, err := ParseSide(strings.TrimSpace(parts[1]))
	if err != nil {
		return Equation{}, err
	}
	eq := Equation{AL: aL, BL: bL, AR: aR, BR: bR}
	if !eq.fitsBoard() {
		return Equation{}, &ParseError{
			Kind:   TooManyPieces,
			Input:  text,
			Detail: fmt.Sprintf("more than %d pieces", MaxPieces),
		}
	}
	return eq, nil
}

// ParseSide parses a sum of signed terms such as "2x+1", "-x" or "3-x+x".
//
// Whitespace is ignored and a missing leading sign means '+'. A bare sign
// with neither digits nor x contributes nothing. Repeated terms add up.
func ParseSide(text string) (coef, constant int, err error) {
	s := stripSpace(text)
	if s == "" {
		return 0, 0, nil
	}
	if s[0] != '+' && s[0] != '-' {
		s = "+" + s
	}

	for i := 0; i < len(s); {
		n, tm, ok := nextTerm(s[i:])
		if !ok {
			return 0, 0, &ParseError{
				Kind:   InvalidTerm,
				Input:  text,
				Detail: fmt.Sprintf("unexpected %q", s[i:]),
			}
		}
		i += n

		if tm.digits == "" && !tm.variable {
			continue
		}
		val := 1
		if tm.digits != "" {
			v, err := strconv.Atoi(tm.digits)
			if err != nil {
				return 0, 0, &ParseError{
					Kind:   InvalidTerm,
					Input:  text,
					Detail: fmt.Sprintf("number %s out of range", tm.digits),
				}
			}
			val = v
		}
		acc := &constant
		if tm.variable {
			acc = &coef
		}
		sum, ok := addChecked(*acc, tm.sign*val)
		if !ok {
			return 0, 0, &ParseError{
				Kind:   InvalidTerm,
				Input:  text,
				Detail: "sum out of range",
			}
		}
		*acc = sum
	}
	return coef, constant, nil
}

func addChecked(a, b int) (int, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return a, false
	}
	return sum, true
}

type term struct {
	sign     int
	digits   string
	variable bool
}

// nextTerm scans (sign)(digits?)(x?) from the start of s.
func nextTerm(s string) (consumed int, tm term, ok bool) {
	if len(s) == 0 {
		return 0, term{}, false
	}
	switch s[0] {
	case '+':
		tm.sign = 1
	case '-':
		tm.sign = -1
	default:
		return 0, term{}, false
	}

	i := 1
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	tm.digits = s[start:i]

	if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
		tm.variable = true
		i++
	}
	return i, tm, true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
