package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidBirthday = errors.New("invalid birthday")

const dateLayout = "2006-01-02"

// ParseBirthday accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date it names.
func ParseBirthday(birthday string) (year int, month time.Month, day int, err error) {
	birthday = strings.TrimSpace(birthday)

	if t, perr := time.Parse(dateLayout, birthday); perr == nil {
		y, m, d := t.Date()
		return y, m, d, nil
	}
	if t, perr := time.Parse(time.RFC3339, birthday); perr == nil {
		y, m, d := t.Date()
		return y, m, d, nil
	}
	return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidBirthday, birthday)
}

// CalculateAge returns the number of birthdays completed by today. The
// calendar date of today is read in its own location. Birthdays in the
// future give a negative age.
func CalculateAge(birthday string, today time.Time) (int, error) {
	birthYear, birthMonth, birthDay, err := ParseBirthday(birthday)
	if err != nil {
		return 0, err
	}

	year, month, day := today.Date()
	age := year - birthYear
	if month < birthMonth || (month == birthMonth && day < birthDay) {
		age--
	}
	return age, nil
}
