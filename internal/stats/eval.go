package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackResidue   = errors.New("formula must leave exactly one value")
	ErrUnknownToken   = errors.New("unknown token")
	ErrDivisionByZero = errors.New("division by zero")
	ErrDomain         = errors.New("value out of range")
)

// Token names understood by Evaluate besides numeric literals and the binary operators.
const (
	TokenLevel  = "level"
	TokenSqrt   = "sqrt"
	TokenMiddle = "middle"
	TokenPower  = "power"
)

type binaryOp func(a, b float64) (float64, error)

var binaryOps = map[string]binaryOp{
	"+": func(a, b float64) (float64, error) { return a + b, nil },
	"-": func(a, b float64) (float64, error) { return a - b, nil },
	"*": func(a, b float64) (float64, error) { return a * b, nil },
	"/": func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	},
	TokenPower: func(a, b float64) (float64, error) { return math.Pow(a, b), nil },
}

type evalStack []float64

func (s *evalStack) push(v float64) { *s = append(*s, v) }

func (s *evalStack) pop() (float64, error) {
	n := len(*s)
	if n == 0 {
		return 0, ErrStackUnderflow
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, nil
}

// Evaluate runs a postfix token sequence at the given level.
//
// Binary operators pop b then a, push trunc(a op b). sqrt pushes an untruncated
// float. middle pops c, b, a and pushes their median. The single value left on
// the stack is truncated to the result.
func Evaluate(tokens []string, level int) (int, error) {
	stack := make(evalStack, 0, len(tokens))
	for i, tok := range tokens {
		if op, ok := binaryOps[tok]; ok {
			b, err := stack.pop()
			if err != nil {
				return 0, fmt.Errorf("token %d %q: %w", i, tok, err)
			}
			a, err := stack.pop()
			if err != nil {
				return 0, fmt.Errorf("token %d %q: %w", i, tok, err)
			}
			v, err := op(a, b)
			if err == nil {
				err = checkFinite(v)
			}
			if err != nil {
				return 0, fmt.Errorf("token %d %q: %w", i, tok, err)
			}
			stack.push(math.Trunc(v))
			continue
		}

		switch tok {
		case TokenLevel:
			stack.push(float64(level))
		case TokenSqrt:
			a, err := stack.pop()
			if err != nil {
				return 0, fmt.Errorf("token %d %q: %w", i, tok, err)
			}
			if a < 0 {
				return 0, fmt.Errorf("token %d %q of %v: %w", i, tok, a, ErrDomain)
			}
			stack.push(math.Sqrt(a))
		case TokenMiddle:
			var abc [3]float64
			for j := 2; j >= 0; j-- {
				v, err := stack.pop()
				if err != nil {
					return 0, fmt.Errorf("token %d %q: %w", i, tok, err)
				}
				abc[j] = v
			}
			stack.push(median(abc[0], abc[1], abc[2]))
		default:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return 0, fmt.Errorf("token %d %q: %w", i, tok, ErrUnknownToken)
			}
			stack.push(v)
		}
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("%d values left: %w", len(stack), ErrStackResidue)
	}
	v := math.Trunc(stack[0])
	if err := checkFinite(v); err != nil {
		return 0, err
	}
	if v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, fmt.Errorf("result %v: %w", v, ErrDomain)
	}
	return int(v), nil
}

func median(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}

func checkFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%v: %w", v, ErrDomain)
	}
	return nil
}
