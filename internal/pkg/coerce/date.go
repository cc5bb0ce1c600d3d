package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	datePart    = regexp.MustCompile(`^(\d{1,4})[-/.](\d{1,2})[-/.](\d{1,4})$`)
	compactPart = regexp.MustCompile(`^\d+$`)
	timePart = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?(Z|[+-]\d{2}:?\d{2})?$`)
)

// ParseDate interprets free-form date text. RFC 3339 is taken as-is; other
// numeric dates are read year first, then day first, so "2016-01-02" is the
// first of February. Digit runs are compact dates: YYYY, YYMMDD, YYYYMMDD,
// YYYYMMDDhhmm and YYYYMMDDhhmmss. A missing zone means local time.
// Unparseable text is nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t
	}

	if compactPart.MatchString(s) {
		return parseCompact(s)
	}

	date, clock, _ := strings.Cut(strings.Replace(s, "T", " ", 1), " ")
	var year, month, day int
	if compactPart.MatchString(date) && len(date) != 4 {
		d := parseCompact(date)
		if d == nil {
			return nil
		}
		year, month, day = d.Year(), int(d.Month()), d.Day()
	} else {
		m := datePart.FindStringSubmatch(date)
		if m == nil {
			return nil
		}
		var ok bool
		if year, month, day, ok = orderFields(m[1], m[2], m[3]); !ok {
			return nil
		}
	}

	var hour, minute, sec, nsec int
	loc := time.Local
	if clock = strings.TrimSpace(clock); clock != "" {
		c := timePart.FindStringSubmatch(clock)
		if c == nil {
			return nil
		}
		hour, _ = strconv.Atoi(c[1])
		minute, _ = strconv.Atoi(c[2])
		if c[3] != "" {
			sec, _ = strconv.Atoi(c[3])
		}
		if c[4] != "" {
			frac := (c[4] + "000000000")[:9]
			nsec, _ = strconv.Atoi(frac)
		}
		if hour > 23 || minute > 59 || sec > 59 {
			return nil
		}
		if c[5] != "" {
			zone, ok := parseZone(c[5])
			if !ok {
				return nil
			}
			loc = zone
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, loc)
	// time.Date normalises overflow; reject dates that do not exist.
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	return &t
}

// parseCompact reads an all-digit date. A bare year keeps today's month and
// day, clamped to the end of a shorter month.
func parseCompact(s string) *time.Time {
	num := func(from, to int) int {
		n, _ := strconv.Atoi(s[from:to])
		return n
	}

	var year, month, day, hour, minute, sec int
	switch len(s) {
	case 4:
		now := time.Now()
		year, month, day = num(0, 4), int(now.Month()), now.Day()
		if last := daysIn(year, month); day > last {
			day = last
		}
	case 6:
		year, month, day = expandYear(num(0, 2), 2), num(2, 4), num(4, 6)
	case 8, 12, 14:
		year, month, day = num(0, 4), num(4, 6), num(6, 8)
		if len(s) >= 12 {
			hour, minute = num(8, 10), num(10, 12)
		}
		if len(s) == 14 {
			sec = num(12, 14)
		}
	default:
		return nil
	}

	if year < 1 || month < 1 || month > 12 || day < 1 || day > daysIn(year, month) {
		return nil
	}
	if hour > 23 || minute > 59 || sec > 59 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
	return &t
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func orderFields(s0, s1, s2 string) (year, month, day int, ok bool) {
	f0, _ := strconv.Atoi(s0)
	f1, _ := strconv.Atoi(s1)
	f2, _ := strconv.Atoi(s2)

	switch {
	case f0 > 31 || len(s0) > 2 || (f1 <= 12 && f2 <= 31):
		year = expandYear(f0, len(s0))
		if f2 <= 12 {
			day, month = f1, f2
		} else {
			month, day = f1, f2
		}
	default:
		year = expandYear(f2, len(s2))
		if f0 > 12 || f1 <= 12 {
			day, month = f0, f1
		} else {
			month, day = f0, f1
		}
	}

	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// expandYear maps a two-digit year into the century that keeps it within 50
// years of now.
func expandYear(y, digits int) int {
	if digits > 2 {
		return y
	}
	now := time.Now().Year()
	century := now - now%100
	y += century
	switch {
	case y >= now+50:
		y -= 100
	case y < now-49:
		y += 100
	}
	return y
}

func parseZone(z string) (*time.Location, bool) {
	if z == "Z" {
		return time.UTC, true
	}
	sign := 1
	if z[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(z[1:], ":", "")
	if len(digits) != 4 {
		return nil, false
	}
	h, _ := strconv.Atoi(digits[:2])
	m, _ := strconv.Atoi(digits[2:])
	if h > 23 || m > 59 {
		return nil, false
	}
	return time.FixedZone("", sign*(h*3600+m*60)), true
}
