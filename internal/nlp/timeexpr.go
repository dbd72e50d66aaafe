package nlp

import (
	"strings"
	"time"
)

// Candidates beyond this count are ignored; the upstream extractor can be
// noisy on long sentences.
const maxTimeCandidates = 10

// TimeRange is an intra-day span from the upstream extractor. Date-level
// precision is all that gets persisted, so ranged candidates are skipped.
type TimeRange struct {
	Begin string
	End   string
}

// TimeCandidate is one value from the time-extraction step: either an
// ISO-like date string or a structured intra-day range.
type TimeCandidate struct {
	Value string
	Range *TimeRange
}

// TimeResolution holds the best date evidence found, in descending
// precision. Fields left empty were never populated.
type TimeResolution struct {
	YMD string // YYYYMMDD
	YM  string // YYYYMM
	Y   string // YYYY
}

// NormalizeTimes classifies each candidate by its '-' separator count:
// two separators parse as year-month-day, one as year-month, none with
// length 4 as a bare year. Unparseable candidates are skipped; later
// candidates of the same precision overwrite earlier ones.
func NormalizeTimes(candidates []TimeCandidate) TimeResolution {
	if len(candidates) > maxTimeCandidates {
		candidates = candidates[:maxTimeCandidates]
	}

	var res TimeResolution
	for _, cand := range candidates {
		if cand.Range != nil {
			continue
		}
		value := strings.TrimSpace(cand.Value)
		if value == "" {
			continue
		}
		switch strings.Count(value, "-") {
		case 2:
			if t, err := time.Parse("2006-01-02", value); err == nil {
				res.YMD = t.Format("20060102")
			}
		case 1:
			if t, err := time.Parse("2006-01", value); err == nil {
				res.YM = t.Format("200601")
			}
		case 0:
			if len(value) == 4 {
				if t, err := time.Parse("2006", value); err == nil {
					res.Y = t.Format("2006")
				}
			}
		}
	}
	return res
}

// Resolve derives the event date plus the month-year and year columns,
// preferring YMD over YM over Y. With no evidence the date falls back to
// now and both derived columns stay unset.
func (r TimeResolution) Resolve(now func() time.Time) (date time.Time, monthYear, year string) {
	switch {
	case r.YMD != "":
		if t, err := time.Parse("20060102", r.YMD); err == nil {
			return t, r.YMD[:6], r.YMD[:4]
		}
	case r.YM != "":
		if t, err := time.Parse("200601", r.YM); err == nil {
			return t, r.YM, r.YM[:4]
		}
	case r.Y != "":
		if t, err := time.Parse("2006", r.Y); err == nil {
			return t, r.Y, r.Y
		}
	}
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), "", ""
}
