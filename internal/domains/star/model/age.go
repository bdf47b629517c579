package model

import (
	"fmt"
	"time"
)

// AgeInYears: số năm tròn, trừ 1 nếu sinh nhật năm nay chưa tới. Không âm.
func AgeInYears(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeWithUnit: "21 год", "22 года", "25 лет"
func AgeWithUnit(age int) string {
	return fmt.Sprintf("%d %s", age, yearsWord(age))
}

func yearsWord(n int) string {
	lastTwo := n % 100
	last := n % 10

	switch {
	case lastTwo >= 11 && lastTwo <= 14:
		return "лет"
	case last == 1:
		return "год"
	case last >= 2 && last <= 4:
		return "года"
	default:
		return "лет"
	}
}

func (s Star) Age(today time.Time) int {
	return AgeInYears(s.BirthDate, today)
}

func (s Star) AgeLabel(today time.Time) string {
	return AgeWithUnit(s.Age(today))
}
