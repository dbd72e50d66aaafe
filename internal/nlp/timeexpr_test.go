package nlp

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2021, 8, 15, 13, 45, 0, 0, time.UTC)
}

func TestNormalizeTimesFullDate(t *testing.T) {
	res := NormalizeTimes([]TimeCandidate{{Value: "2021-05-03"}})
	if res.YMD != "20210503" {
		t.Fatalf("YMD: want=%q got=%q", "20210503", res.YMD)
	}
	date, monthYear, year := res.Resolve(fixedNow)
	if want := time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Fatalf("date: want=%v got=%v", want, date)
	}
	if monthYear != "202105" {
		t.Fatalf("monthYear: want=%q got=%q", "202105", monthYear)
	}
	if year != "2021" {
		t.Fatalf("year: want=%q got=%q", "2021", year)
	}
}

func TestNormalizeTimesYearMonth(t *testing.T) {
	res := NormalizeTimes([]TimeCandidate{{Value: "2021-05"}})
	if res.YM != "202105" {
		t.Fatalf("YM: want=%q got=%q", "202105", res.YM)
	}
	date, monthYear, year := res.Resolve(fixedNow)
	if want := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Fatalf("date: want=%v got=%v", want, date)
	}
	if monthYear != "202105" || year != "2021" {
		t.Fatalf("derived fields: got monthYear=%q year=%q", monthYear, year)
	}
}

func TestNormalizeTimesBareYear(t *testing.T) {
	res := NormalizeTimes([]TimeCandidate{{Value: "2021"}})
	if res.Y != "2021" {
		t.Fatalf("Y: want=%q got=%q", "2021", res.Y)
	}
	date, monthYear, year := res.Resolve(fixedNow)
	if want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Fatalf("date: want=%v got=%v", want, date)
	}
	if monthYear != "2021" || year != "2021" {
		t.Fatalf("derived fields: got monthYear=%q year=%q", monthYear, year)
	}
}

func TestNormalizeTimesEmptyDefaultsToNow(t *testing.T) {
	res := NormalizeTimes(nil)
	date, monthYear, year := res.Resolve(fixedNow)
	if want := time.Date(2021, 8, 15, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Fatalf("date: want=%v got=%v", want, date)
	}
	if monthYear != "" || year != "" {
		t.Fatalf("derived fields should stay unset: got monthYear=%q year=%q", monthYear, year)
	}
}

func TestNormalizeTimesPrecedence(t *testing.T) {
	res := NormalizeTimes([]TimeCandidate{
		{Value: "2020"},
		{Value: "2021-05-03"},
		{Value: "2019-02"},
	})
	date, _, _ := res.Resolve(fixedNow)
	if want := time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC); !date.Equal(want) {
		t.Fatalf("YMD should win: want=%v got=%v", want, date)
	}
}

func TestNormalizeTimesSkipsRangesAndGarbage(t *testing.T) {
	res := NormalizeTimes([]TimeCandidate{
		{Range: &TimeRange{Begin: "09:00", End: "11:00"}},
		{Value: "not-a-date"},
		{Value: "20/05/2021"},
		{Value: "2021-05"},
	})
	if res.YMD != "" {
		t.Fatalf("YMD should be empty, got=%q", res.YMD)
	}
	if res.YM != "202105" {
		t.Fatalf("YM: want=%q got=%q", "202105", res.YM)
	}
}

func TestNormalizeTimesCapsCandidates(t *testing.T) {
	candidates := make([]TimeCandidate, 0, 12)
	for i := 0; i < 11; i++ {
		candidates = append(candidates, TimeCandidate{Value: "junk"})
	}
	// The only parseable candidate sits beyond the cap and must be ignored.
	candidates = append(candidates, TimeCandidate{Value: "2021-05-03"})
	res := NormalizeTimes(candidates)
	if res.YMD != "" {
		t.Fatalf("candidate beyond cap should be ignored, got YMD=%q", res.YMD)
	}
}
