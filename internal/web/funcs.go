package web

import (
	"html/template"
	"slices"
	"strings"
	"time"

	starmodel "borntoday/internal/domains/star/model"
)

var genitiveMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Funcs: template funcs dùng chung; mediaURL chuyển object key thành URL public
func Funcs(mediaURL func(key string) string) template.FuncMap {
	return template.FuncMap{
		"media":      mediaURL,
		"date":       FormatDate,
		"dayMonth":   FormatDayMonth,
		"longDate":   FormatLongDate,
		"linebreaks": Linebreaks,
		"hasID":      slices.Contains[[]int64, int64],
		"starList":   NewStarList,
	}
}

// StarList: dữ liệu cho partial "star_list" (cần today để tính tuổi)
type StarList struct {
	Stars []starmodel.Star
	Today time.Time
}

func NewStarList(stars []starmodel.Star, today time.Time) StarList {
	return StarList{Stars: stars, Today: today}
}

// FormatDate: 15.04.1949
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDayMonth: "10 марта"
func FormatDayMonth(t time.Time) string {
	return strings.Join([]string{t.Format("2"), genitiveMonths[t.Month()-1]}, " ")
}

// FormatLongDate: "15 апреля 1949 г."
func FormatLongDate(t time.Time) string {
	return FormatDayMonth(t) + " " + t.Format("2006") + " г."
}

// Linebreaks escape HTML rồi chia đoạn theo dòng trống, xuống dòng đơn thành <br>
func Linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		escaped := template.HTMLEscapeString(para)
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(escaped, "\n", "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
