package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// create once at init
var usFed = cal.NewBusinessCalendar()

func init() {
	usFed.AddHoliday(
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
}

func IsBusinessDay(t time.Time) bool {
	return usFed.IsWorkday(t)
}

// NextBusinessDay returns t itself when t is a workday, otherwise the
// first workday after t. Reminder activity deadlines roll forward so a
// rent-collection task never lands on a weekend or federal holiday.
func NextBusinessDay(t time.Time) time.Time {
	for !usFed.IsWorkday(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
