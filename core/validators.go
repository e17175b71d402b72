package core

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	timeTag   = "timefmt"
	timeText  = "must be a valid 24-hour time (HH:MM)"
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

	dateTag   = "dateymd"
	dateText  = "must be a valid date (YYYY-MM-DD)"
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	monthKeyTag   = "monthkey"
	monthKeyText  = "must be a valid month key (YYYY-MM)"
	monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

	phoneTag   = "esphone"
	phoneText  = "must be a valid 9-digit phone number"
	phoneRegex = regexp.MustCompile(`^(\+34)?[6-9]\d{8}$`)

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

func init() {
	Validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	Translator, _ = uni.GetTranslator("en")

	_ = entranslations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(timeTag, timeValidation)
	RegisterCustomTranslation(timeTag, timeText)

	_ = Validate.RegisterValidation(dateTag, dateValidation)
	RegisterCustomTranslation(dateTag, dateText)

	_ = Validate.RegisterValidation(monthKeyTag, monthKeyValidation)
	RegisterCustomTranslation(monthKeyTag, monthKeyText)

	_ = Validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterCustomTranslation(phoneTag, phoneText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
	RegisterCustomTranslation(requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// timeValidation only allows 24-hour HH:MM times.
func timeValidation(fl validator.FieldLevel) bool {
	return timeRegex.MatchString(fl.Field().String())
}

// dateValidation only allows real YYYY-MM-DD calendar dates.
func dateValidation(fl validator.FieldLevel) bool {
	return ValidDate(fl.Field().String())
}

// monthKeyValidation only allows YYYY-MM month keys.
func monthKeyValidation(fl validator.FieldLevel) bool {
	return ValidMonthKey(fl.Field().String())
}

// phoneValidation allows Spanish mobile/landline numbers, with an optional
// +34 prefix; whitespace is ignored.
func phoneValidation(fl validator.FieldLevel) bool {
	phone := strings.ReplaceAll(fl.Field().String(), " ", "")
	return phoneRegex.MatchString(phone)
}

// ValidDate reports whether s is a real YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidMonthKey reports whether s is a YYYY-MM month key.
func ValidMonthKey(s string) bool {
	return monthKeyRegex.MatchString(s)
}
