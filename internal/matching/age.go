package matching

import (
	"strconv"
	"strings"
	"time"
)

// AgeFromBirthday derives age with calendar-aware subtraction: the year
// difference, minus one if this year's birthday has not happened yet.
func AgeFromBirthday(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// AgeMatch reports whether candidateAge satisfies the viewer's age-range
// spec. Two forms are accepted:
//
//   - "min-max"        closed range, inclusive on both ends
//   - "52+"            open range, matches age >= 52
//
// The open range is also stored by older clients as "52 and above".
// A malformed spec matches nothing.
func AgeMatch(candidateAge int, spec string) bool {
	min, max, open, ok := parseAgeSpec(spec)
	if !ok {
		return false
	}
	if open {
		return candidateAge >= min
	}
	return candidateAge >= min && candidateAge <= max
}

// ValidAgeSpec reports whether spec parses as either accepted form.
func ValidAgeSpec(spec string) bool {
	_, _, _, ok := parseAgeSpec(spec)
	return ok
}

func parseAgeSpec(spec string) (min, max int, open, ok bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, false, false
	}

	for _, suffix := range []string{"+", " and above"} {
		if n, cut := strings.CutSuffix(spec, suffix); cut {
			m, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return 0, 0, false, false
			}
			return m, 0, true, true
		}
	}

	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || lo > hi {
		return 0, 0, false, false
	}
	return lo, hi, false, true
}
