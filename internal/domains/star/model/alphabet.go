package model

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RussianAlphabet: 33 chữ cái theo thứ tự hiển thị trên sitemap
const RussianAlphabet = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"

// Letter: một ô trong thanh chữ cái
type Letter struct {
	Char    string
	Active  bool // có ít nhất một ngôi sao bắt đầu bằng chữ này
	Current bool
}

// FirstLetter: chữ cái đầu của tên, viết hoa
func FirstLetter(name string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if size == 0 || r == utf8.RuneError {
		return 0, false
	}
	return unicode.ToUpper(r), true
}

// ActiveLetters trả về các chữ trong alphabet mà có ngôi sao bắt đầu bằng chữ đó.
// Tên bắt đầu bằng ký tự ngoài alphabet bị bỏ qua.
func ActiveLetters(stars []Star, alphabet string) map[rune]bool {
	active := make(map[rune]bool)
	for _, s := range stars {
		r, ok := FirstLetter(s.Name)
		if ok && strings.ContainsRune(alphabet, r) {
			active[r] = true
		}
	}
	return active
}

// LetterIndex dựng thanh chữ cái theo thứ tự alphabet
func LetterIndex(alphabet string, active map[rune]bool, current string) []Letter {
	letters := make([]Letter, 0, utf8.RuneCountInString(alphabet))
	for _, r := range alphabet {
		ch := string(r)
		letters = append(letters, Letter{
			Char:    ch,
			Active:  active[r],
			Current: ch == current,
		})
	}
	return letters
}

// StarsStartingWith: lọc tên bắt đầu bằng letter (không phân biệt hoa thường), sắp xếp theo tên
func StarsStartingWith(stars []Star, letter string) []Star {
	prefix := strings.ToUpper(strings.TrimSpace(letter))
	if prefix == "" {
		return []Star{}
	}

	matched := make([]Star, 0)
	for _, s := range stars {
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s.Name)), prefix) {
			matched = append(matched, s)
		}
	}
	SortByName(matched)
	return matched
}

// SortByName sắp xếp theo tên với collation tiếng Nga (Ё đứng sau Е, không phân biệt hoa thường)
func SortByName(stars []Star) {
	col := collate.New(language.Russian, collate.IgnoreCase)
	slices.SortStableFunc(stars, func(a, b Star) int {
		return col.CompareString(a.Name, b.Name)
	})
}
