package binomial

import "fmt"

// Mode is the comparison used by a cumulative query P(X <op> k).
type Mode int

const (
	Equal Mode = iota
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
)

// Modes lists every mode in display order.
var Modes = []Mode{Equal, Less, LessOrEqual, Greater, GreaterOrEqual}

func (m Mode) String() string {
	switch m {
	case Equal:
		return "="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool { return m >= Equal && m <= GreaterOrEqual }

// ParseMode accepts the operator spelling returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}
