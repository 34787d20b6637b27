package validate

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Collect drops nil results and returns nil when nothing failed.
func Collect(fields ...*ErrField) Errs {
	var out Errs
	for _, f := range fields {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

// Length checks the rune count of value against [min, max]; max <= 0 means unbounded.
func Length(field, value string, min, max int) *ErrField {
	n := utf8.RuneCountInString(value)
	if n < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	if max > 0 && n > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

// MaxBytes bounds the UTF-8 byte length of value.
func MaxBytes(field, value string, max int) *ErrField {
	if len(value) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " bytes"}
	}
	return nil
}

// RequiredInt rejects a JSON number that was absent or null.
func RequiredInt(field string, v *int) *ErrField {
	if v == nil {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func IntRange(field string, v, min, max int) *ErrField {
	if v < min || v > max {
		return &ErrField{Field: field, Msg: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)}
	}
	return nil
}

// Email accepts a bare addr-spec ("a@x.com"), not a display-name form.
func Email(field, value string) *ErrField {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		return &ErrField{Field: field, Msg: "invalid email"}
	}
	return nil
}
