package fifa

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	teamLinkPattern   = regexp.MustCompile(`/team/(\d+)/\S+/`)
	playerLinkPattern = regexp.MustCompile(`/player/(\d+)/\S+/(\d+)`)

	splitSeasonPattern  = regexp.MustCompile(`^\d{4}/(\d{4})$`)
	singleSeasonPattern = regexp.MustCompile(`^\d{4}$`)
)

// NoTeamID is stored for teams whose link cannot be resolved.
const NoTeamID = "-"

// TeamID extracts the numeric identifier from a link like /team/1/manchester-united/.
func TeamID(href string) (string, error) {
	return linkID(teamLinkPattern, href, "team")
}

// PlayerID extracts the numeric identifier from a link like /player/20801/cristiano-ronaldo/230001.
func PlayerID(href string) (string, error) {
	return linkID(playerLinkPattern, href, "player")
}

func linkID(pattern *regexp.Regexp, href, kind string) (string, error) {
	match := pattern.FindStringSubmatch(href)
	if match == nil {
		return "", fmt.Errorf("could not find the %s identifier in %q: %w", kind, href, ErrNoIdentifier)
	}
	return match[1], nil
}

// SeasonCode converts "2023" or "2022/2023" into "23".
func SeasonCode(label string) (string, error) {
	label = strings.TrimSpace(label)

	year := ""
	if m := splitSeasonPattern.FindStringSubmatch(label); m != nil {
		year = m[1]
	} else if singleSeasonPattern.MatchString(label) {
		year = label
	} else {
		return "", fmt.Errorf("%w in %q", ErrSeasonNotDetected, label)
	}
	return year[2:], nil
}

// ParseSeasonCode accepts a season code as typed by a user ("7", "07", "23") or
// any label SeasonCode understands, and returns the canonical 2-digit code.
func ParseSeasonCode(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 || len(s) == 2 {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			return fmt.Sprintf("%02d", n), nil
		}
	}
	return SeasonCode(s)
}

// centuryPivot splits two-digit codes between centuries the way strptime's %y
// does: 69..99 are 1969..1999, 00..68 are 2000..2068.
const centuryPivot = 69

// EndingYear expands a season code to its ending year, "23" -> 2023 and
// "99" -> 1999.
func EndingYear(code string) (int, error) {
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 || n > 99 {
		return 0, fmt.Errorf("%w: code %q", ErrSeasonNotDetected, code)
	}
	if n >= centuryPivot {
		return 1900 + n, nil
	}
	return 2000 + n, nil
}

// SeasonYear is EndingYear as text. Codes that are not two digits are returned
// unchanged.
func SeasonYear(code string) string {
	year, err := EndingYear(code)
	if err != nil {
		return code
	}
	return strconv.Itoa(year)
}

// SeasonRange lists every code from..to inclusive in chronological order, e.g.
// "07".."09" -> 07 08 09 and "98".."01" -> 98 99 00 01.
func SeasonRange(from, to string) ([]string, error) {
	start, err := ParseSeasonCode(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseSeasonCode(to)
	if err != nil {
		return nil, err
	}

	lo, err := EndingYear(start)
	if err != nil {
		return nil, err
	}
	hi, err := EndingYear(end)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, fmt.Errorf("season range %s..%s is reversed", start, end)
	}

	codes := make([]string, 0, hi-lo+1)
	for year := lo; year <= hi; year++ {
		codes = append(codes, fmt.Sprintf("%02d", year%100))
	}
	return codes, nil
}
