package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MonthKeyboard renders an inline month calendar: a header row, a
// weekday row, one row per week with a button per day, and a
// navigation row. Day buttons carry "create_{year}_{month}_{day}"
// callback data; blanks and labels carry "ignore".
func MonthKeyboard(year int, month time.Month) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", month, year), "ignore"),
	))

	weekdays := []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
	var weekdayRow []tgbotapi.InlineKeyboardButton
	for _, day := range weekdays {
		weekdayRow = append(weekdayRow, tgbotapi.NewInlineKeyboardButtonData(day, "ignore"))
	}
	rows = append(rows, weekdayRow)

	for _, week := range monthWeeks(year, month) {
		var row []tgbotapi.InlineKeyboardButton
		for _, day := range week {
			if day == 0 {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(" ", "ignore"))
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d", day),
				fmt.Sprintf("create_%d_%d_%d", year, int(month), day),
			))
		}
		rows = append(rows, row)
	}

	prevYear, prevMonth := prevMonth(year, month)
	nextYear, nextMonth := nextMonth(year, month)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("<", fmt.Sprintf("prev_%d_%d", prevYear, int(prevMonth))),
		tgbotapi.NewInlineKeyboardButtonData("Cancel", "cancel"),
		tgbotapi.NewInlineKeyboardButtonData(">", fmt.Sprintf("next_%d_%d", nextYear, int(nextMonth))),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// monthWeeks returns the month laid out as Monday-first weeks, with 0
// for days belonging to adjacent months.
func monthWeeks(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][7]int
	var week [7]int
	slot := offset
	for day := 1; day <= daysInMonth(year, month); day++ {
		week[slot] = day
		slot++
		if slot == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			slot = 0
		}
	}
	if slot > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// daysInMonth counts the days of the month; day 0 of the next month is
// the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
