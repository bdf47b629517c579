package model

import (
	"errors"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	msgRequired      = "Обязательное поле."
	msgNameTooLong   = "Убедитесь, что это значение содержит не более 100 символов."
	msgInvalidDate   = "Введите правильную дату."
	msgFutureDate    = "Дата рождения не может быть в будущем."
	msgNoCountry     = "Выберите страну."
	msgNoCategories  = "Выберите хотя бы одну категорию."
	MsgUnknownChoice = "Выберите корректный вариант."
)

// StarForm: dữ liệu form /add/ (cũng là body PUT /admin/api/stars/:id)
type StarForm struct {
	Name        string  `json:"name"`
	BirthDate   string  `json:"birth_date"`
	CountryID   int64   `json:"country"`
	CategoryIDs []int64 `json:"categories"`
	Content     string  `json:"content"`
}

// Normalize trim khoảng trắng thừa
func (f *StarForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.BirthDate = strings.TrimSpace(f.BirthDate)
	f.Content = strings.TrimSpace(f.Content)
}

// Validate: today dùng để chặn ngày sinh trong tương lai
func (f StarForm) Validate(today time.Time) error {
	err := validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error(msgRequired),
			validation.RuneLength(1, 100).Error(msgNameTooLong),
		),
		validation.Field(&f.BirthDate,
			validation.Required.Error(msgRequired),
			validation.Date(DateLayout).Error(msgInvalidDate),
			validation.By(notAfter(today)),
		),
		validation.Field(&f.CountryID, validation.Required.Error(msgNoCountry)),
		validation.Field(&f.CategoryIDs, validation.Required.Error(msgNoCategories)),
		validation.Field(&f.Content, validation.Required.Error(msgRequired)),
	)
	if err == nil {
		return nil
	}

	if fe, ok := AsFieldErrors(err); ok {
		return fe
	}
	return err
}

// ParsedBirthDate chỉ gọi sau khi Validate thành công
func (f StarForm) ParsedBirthDate() (time.Time, error) {
	return time.Parse(DateLayout, f.BirthDate)
}

func notAfter(today time.Time) validation.RuleFunc {
	limit := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return func(value interface{}) error {
		s, _ := value.(string)
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil
		}
		if d.After(limit) {
			return errors.New(msgFutureDate)
		}
		return nil
	}
}

// FieldErrors: lỗi theo từng field để render lại form
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors chuyển validation.Errors (ozzo) hoặc FieldErrors sang FieldErrors
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fe = make(FieldErrors, len(verrs))
	for field, e := range verrs {
		fe[field] = e.Error()
	}
	return fe, true
}
