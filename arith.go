package vogen

// Integer is the constraint of checked arithmetic helpers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func signed[T Integer]() bool {
	var zero T
	return zero-1 < zero
}

// AddChecked returns a+b or ErrOverflow.
func AddChecked[T Integer](a, b T) (T, error) {
	c := a + b
	if signed[T]() {
		if (b > 0 && c < a) || (b < 0 && c > a) {
			return 0, &ArithmeticError{Op: "add", A: a, B: b, Err: ErrOverflow}
		}
	} else if c < a {
		return 0, &ArithmeticError{Op: "add", A: a, B: b, Err: ErrOverflow}
	}
	return c, nil
}

// SubChecked returns a-b or ErrOverflow.
func SubChecked[T Integer](a, b T) (T, error) {
	c := a - b
	if signed[T]() {
		if (b > 0 && c > a) || (b < 0 && c < a) {
			return 0, &ArithmeticError{Op: "sub", A: a, B: b, Err: ErrOverflow}
		}
	} else if b > a {
		return 0, &ArithmeticError{Op: "sub", A: a, B: b, Err: ErrOverflow}
	}
	return c, nil
}

// MulChecked returns a*b or ErrOverflow.
func MulChecked[T Integer](a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	overflow := c/b != a
	if signed[T]() {
		// MinInt * -1 wraps to itself and passes the division test.
		neg := T(0) - 1
		if (a == neg && b == -b) || (b == neg && a == -a) {
			overflow = true
		}
	}
	if overflow {
		return 0, &ArithmeticError{Op: "mul", A: a, B: b, Err: ErrOverflow}
	}
	return c, nil
}

// DivChecked returns a/b, ErrDivideByZero or ErrOverflow.
func DivChecked[T Integer](a, b T) (T, error) {
	if b == 0 {
		return 0, &ArithmeticError{Op: "div", A: a, B: b, Err: ErrDivideByZero}
	}
	if signed[T]() && b == T(0)-1 && a != 0 && a == -a {
		return 0, &ArithmeticError{Op: "div", A: a, B: b, Err: ErrOverflow}
	}
	return a / b, nil
}
