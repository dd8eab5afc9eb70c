package chesscom

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// YearMonth identifies one monthly archive.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the year and month of t in its location.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Before reports whether ym is earlier than o.
func (ym YearMonth) Before(o YearMonth) bool {
	if ym.Year != o.Year {
		return ym.Year < o.Year
	}
	return ym.Month < o.Month
}

// Prev returns the preceding month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// MonthsForward returns the months from first to last inclusive. An
// inverted range yields nil.
func MonthsForward(first, last YearMonth) []YearMonth {
	var months []YearMonth
	for ym := first; !last.Before(ym); ym = ym.Next() {
		months = append(months, ym)
	}
	return months
}

// MonthsBack returns up to max months walking backward from last inclusive.
func MonthsBack(last YearMonth, max int) []YearMonth {
	months := make([]YearMonth, 0, max)
	ym := last
	for i := 0; i < max; i++ {
		months = append(months, ym)
		ym = ym.Prev()
	}
	return months
}

var archiveURLRE = regexp.MustCompile(`/games/(\d{4})/(\d{2})$`)

// ParseArchiveURL extracts the year and month from an archive URL like
// ".../player/alice/games/2023/01".
func ParseArchiveURL(url string) (YearMonth, error) {
	m := archiveURLRE.FindStringSubmatch(url)
	if m == nil {
		return YearMonth{}, fmt.Errorf("malformed archive URL: %q", url)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("malformed archive URL: %q", url)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}
