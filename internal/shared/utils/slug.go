package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugAttempts giới hạn số lần thử lại khi insert bị trùng slug (race giữa 2 request)
const MaxSlugAttempts = 5

// ErrSlugUnavailable: hết số lần thử mà vẫn không có slug trống
var ErrSlugUnavailable = errors.New("could not allocate a unique slug")

// cyrillicToLatin: bảng chuyển tự tiếng Nga (chữ thường), chữ hoa xử lý trong Transliterate
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "j", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "ju", 'я': "ja",
}

// Transliterate chuyển chữ Kirin sang Latin, giữ nguyên hoa/thường.
// Ký tự không phải Kirin (Latin, số, dấu câu) được giữ nguyên.
// "Жанна Фриске" → "Zhanna Friske"
func Transliterate(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for _, r := range input {
		lower := unicode.ToLower(r)
		latin, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if lower != r && latin != "" {
			// Chữ hoa: chỉ viết hoa ký tự đầu ("Ж" → "Zh")
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}

	return b.String()
}

// Slugify: NFKD, bỏ dấu, lowercase, mọi cụm ký tự ngoài [a-z0-9] thành một dấu "-"
// "Ólafur  Arnalds!" → "olafur-arnalds"
func Slugify(input string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, input)
	if err != nil {
		stripped = input
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false

	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// GenerateSlug: Transliterate + Slugify
// "Алла Пугачёва" → "alla-pugacheva"
func GenerateSlug(input string) string {
	return Slugify(Transliterate(norm.NFC.String(input)))
}

// BaseSlug như GenerateSlug nhưng không bao giờ trả về chuỗi rỗng:
// input không chuyển được (vd "!!!" hoặc chữ Hán) dùng fallback của từng loại entity
func BaseSlug(input, fallback string) string {
	if s := GenerateSlug(input); s != "" {
		return s
	}
	return fallback
}

// SlugCandidate: n = 0 → base, n > 0 → base-n
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}

// SlugTakenFunc kiểm tra slug đã được dùng bởi record khác cùng loại chưa
type SlugTakenFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug trả về candidate đầu tiên chưa bị dùng: base, base-1, base-2, ...
func UniqueSlug(ctx context.Context, base string, taken SlugTakenFunc) (string, error) {
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := SlugCandidate(base, n)
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !used {
			return candidate, nil
		}
	}
}

// InsertWithSlugFunc insert record với slug đã chọn
type InsertWithSlugFunc func(ctx context.Context, slug string) error

// InsertWithUniqueSlug chọn slug trống rồi insert. Unique constraint ở DB là nguồn sự thật:
// nếu request khác chiếm slug giữa lúc kiểm tra và insert (isConflict == true)
// thì quét lại và thử tiếp, tối đa MaxSlugAttempts lần.
func InsertWithUniqueSlug(
	ctx context.Context,
	base string,
	taken SlugTakenFunc,
	insert InsertWithSlugFunc,
	isConflict func(error) bool,
) (string, error) {
	for attempt := 1; attempt <= MaxSlugAttempts; attempt++ {
		slug, err := UniqueSlug(ctx, base, taken)
		if err != nil {
			return "", err
		}

		err = insert(ctx, slug)
		if err == nil {
			return slug, nil
		}
		if !isConflict(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: base %q", ErrSlugUnavailable, base)
}
