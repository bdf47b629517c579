package model

import "time"

// BirthdayWindows: ngôi sao có sinh nhật hôm nay, ngày mai, ngày kia
type BirthdayWindows struct {
	Today    []Star
	Tomorrow []Star
	DayAfter []Star

	TodayDate    time.Time
	TomorrowDate time.Time
	DayAfterDate time.Time
}

// PartitionByBirthday so sánh (tháng, ngày) sinh với 3 ngày tới, bỏ qua năm.
// Mỗi ngôi sao chỉ vào cửa sổ khớp đầu tiên (today → tomorrow → day after),
// thứ tự đầu vào được giữ nguyên.
// 29/02 chỉ khớp khi năm hiện tại là năm nhuận.
func PartitionByBirthday(stars []Star, today time.Time) BirthdayWindows {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	w := BirthdayWindows{
		Today:        []Star{},
		Tomorrow:     []Star{},
		DayAfter:     []Star{},
		TodayDate:    day,
		TomorrowDate: day.AddDate(0, 0, 1),
		DayAfterDate: day.AddDate(0, 0, 2),
	}

	for _, s := range stars {
		switch {
		case sameMonthDay(s.BirthDate, w.TodayDate):
			w.Today = append(w.Today, s)
		case sameMonthDay(s.BirthDate, w.TomorrowDate):
			w.Tomorrow = append(w.Tomorrow, s)
		case sameMonthDay(s.BirthDate, w.DayAfterDate):
			w.DayAfter = append(w.DayAfter, s)
		}
	}

	return w
}

func sameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}
