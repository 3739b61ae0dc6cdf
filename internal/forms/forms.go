// Package forms validates user input before it reaches the schedule store.
package forms

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/javiermolinar/poolboard/internal/clock"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// custom validation tags
const (
	notBlankTag = "notblank"
	weekdayTag  = "weekday"
)

// Error reports every invalid field of one form.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Validator checks form structs and renders English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with the custom tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	_ = v.RegisterValidation(weekdayTag, validWeekday)
	registerCustomTranslations(v, trans)

	return &Validator{validate: v, translator: trans}
}

// Check validates form. It returns *Error for field failures.
func (v *Validator) Check(form any) error {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating form: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Translate(v.translator)
	}
	return &Error{Fields: fields}
}

func registerCustomTranslations(v *validator.Validate, trans ut.Translator) {
	messages := map[string]string{
		notBlankTag: "{0} cannot be blank",
		weekdayTag:  "{0} must be a day of the week",
	}
	for tag, msg := range messages {
		register := func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		}
		render := func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(fe.Tag(), fe.Field())
			return s
		}
		_ = v.RegisterTranslation(tag, trans, register, render)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func validWeekday(fl validator.FieldLevel) bool {
	return schedule.Weekday(fl.Field().String()).Valid()
}

// Course is the add/edit course form.
type Course struct {
	Name       string  `json:"name" validate:"notblank,max=80"`
	TotalHours float64 `json:"totalHours" validate:"gt=0,lte=1000"`
	Color      string  `json:"color" validate:"omitempty,hexcolor"`
}

// Pool is the add pool form.
type Pool struct {
	Title     string             `json:"title" validate:"notblank,max=80"`
	Location  string             `json:"location" validate:"max=120"`
	Days      []schedule.Weekday `json:"days" validate:"min=1,max=7,dive,weekday"`
	StartHour int                `json:"startHour" validate:"gte=0,lte=23"`
	EndHour   int                `json:"endHour" validate:"gte=1,lte=24,gtfield=StartHour"`
}

// Hours is the pool opening hours form.
type Hours struct {
	StartHour int `json:"startHour" validate:"gte=0,lte=23"`
	EndHour   int `json:"endHour" validate:"gte=1,lte=24,gtfield=StartHour"`
}

// Session is the manual session form. Start and End are minutes from midnight.
type Session struct {
	CourseID string           `json:"courseId" validate:"required"`
	PoolID   string           `json:"poolId" validate:"required"`
	Day      schedule.Weekday `json:"day" validate:"weekday"`
	Start    int              `json:"start" validate:"gte=0,lt=1440"`
	End      int              `json:"end" validate:"gtfield=Start,lte=1440"`
}

// Color is the custom colour form.
type Color struct {
	Color string `json:"color" validate:"required,hexcolor"`
}

// SessionFromText builds a Session form from "HH:MM" clock strings.
func SessionFromText(courseID, poolID, day, start, end string) (Session, error) {
	d, err := schedule.ParseWeekday(day)
	if err != nil {
		return Session{}, err
	}
	s, err := clock.Parse(start)
	if err != nil {
		return Session{}, fmt.Errorf("start: %w", err)
	}
	e, err := clock.Parse(end)
	if err != nil {
		return Session{}, fmt.Errorf("end: %w", err)
	}
	return Session{CourseID: courseID, PoolID: poolID, Day: d, Start: s, End: e}, nil
}
