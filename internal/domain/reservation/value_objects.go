package reservation

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	MinSeatNumber = 1
	MaxSeatNumber = 99
)

// Seat identifies one seat in a room: a row letter and a seat number.
type Seat struct {
	row    byte
	number int
}

func NewSeat(row string, number int) (Seat, error) {
	if len(row) != 1 {
		return Seat{}, ErrInvalidSeatCode
	}
	r := strings.ToUpper(row)[0]
	if r < 'A' || r > 'Z' {
		return Seat{}, ErrInvalidSeatCode
	}
	if number < MinSeatNumber || number > MaxSeatNumber {
		return Seat{}, ErrInvalidSeatCode
	}
	return Seat{row: r, number: number}, nil
}

// ParseSeat accepts one letter followed by one or two digits, e.g. "A5" or "b12".
func ParseSeat(code string) (Seat, error) {
	code = strings.TrimSpace(code)
	if len(code) < 2 || len(code) > 3 {
		return Seat{}, ErrInvalidSeatCode
	}
	digits := code[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Seat{}, ErrInvalidSeatCode
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Seat{}, ErrInvalidSeatCode
	}
	return NewSeat(code[:1], n)
}

func (s Seat) Row() string {
	return string(s.row)
}

func (s Seat) Number() int {
	return s.number
}

func (s Seat) IsZero() bool {
	return s.row == 0
}

func (s Seat) String() string {
	if s.IsZero() {
		return ""
	}
	return string(s.row) + strconv.Itoa(s.number)
}

const paymentTokenPrefix = "PAY_"

// NewPaymentToken issues a token in the PAY_XXXXXXXX form used when the
// caller did not bring one from a payment provider.
func NewPaymentToken() string {
	return paymentTokenPrefix + strings.ToUpper(uuid.NewString()[:8])
}
