package domain

import "time"

// Day represents a history day with the number of words rendered on it
type Day struct {
	Date      time.Time
	WordCount int
}

// DateString returns date in YYYYMMDD format, used in callback data
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string
func (d Day) DisplayString() string {
	return d.displayAt(time.Now())
}

var monthsShort = []string{
	"", "янв", "фев", "мар", "апр", "мая", "июн",
	"июл", "авг", "сен", "окт", "ноя", "дек",
}

func (d Day) displayAt(now time.Time) string {
	if sameDay(d.Date, now) {
		return "Сегодня"
	}
	if sameDay(d.Date, now.AddDate(0, 0, -1)) {
		return "Вчера"
	}
	return d.Date.Format("2 ") + monthsShort[d.Date.Month()] + d.Date.Format(" 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
