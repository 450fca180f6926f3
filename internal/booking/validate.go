package booking

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alauddinGen-Z/unilanguage/internal/config"
)

// ErrDateFormat is returned for availability queries whose date parameter
// is not a real YYYY-MM-DD date. POST requests report the same problem as
// a field error instead.
var ErrDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

const dateLayout = "2006-01-02"

var (
	phonePattern = regexp.MustCompile(`^\+?\d[\d\s-]{8,}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Validator checks booking input against field-shape rules and the
// school's booking policy. It is pure: the only inputs are the request,
// the clock and the static course configuration.
type Validator struct {
	courses  config.Courses
	loc      *time.Location
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator(courses config.Courses, loc *time.Location) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "course", func(fl validator.FieldLevel) bool {
		for _, name := range config.CourseNames {
			if fl.Field().String() == name {
				return true
			}
		}
		return false
	})
	mustRegister(v, "dateshape", func(fl validator.FieldLevel) bool {
		return datePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "timeshape", func(fl validator.FieldLevel) bool {
		return timePattern.MatchString(fl.Field().String())
	})

	return &Validator{
		courses:  courses,
		loc:      loc,
		validate: v,
		now:      time.Now,
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Booking validates a POST body. All field-shape errors are collected
// into one ValidationError before any business rule runs; business rules
// then apply in order: date window, business hours, course mapping.
func (v *Validator) Booking(raw RawRequest) (*Request, error) {
	if err := v.validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
		}
		return nil, &ValidationError{Fields: fields}
	}

	if err := v.dateWindow(raw.Date); err != nil {
		return nil, err
	}

	hour, _ := strconv.Atoi(raw.Time[:2])
	if hour < 9 || hour >= 18 {
		return nil, ErrOutsideHours
	}

	calendarID, ok := v.courses.CalendarID(raw.Course)
	if !ok {
		return nil, ErrUnknownCourse
	}

	return &Request{
		Name:       raw.Name,
		WhatsApp:   raw.WhatsApp,
		Course:     raw.Course,
		Date:       raw.Date,
		Time:       raw.Time,
		CalendarID: calendarID,
	}, nil
}

// AvailabilityQuery validates the GET parameters and resolves the course
// to its calendar id.
func (v *Validator) AvailabilityQuery(date, course string) (string, error) {
	if !datePattern.MatchString(date) {
		return "", ErrDateFormat
	}
	if err := v.dateWindow(date); err != nil {
		return "", err
	}
	calendarID, ok := v.courses.CalendarID(course)
	if !ok {
		return "", ErrUnknownCourse
	}
	return calendarID, nil
}

// dateWindow enforces today <= date <= today+3 months, midnight-based in
// the business timezone.
func (v *Validator) dateWindow(date string) error {
	day, err := time.ParseInLocation(dateLayout, date, v.loc)
	if err != nil {
		return ErrDateFormat
	}

	now := v.now().In(v.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)

	if day.Before(today) {
		return ErrPastDate
	}
	if day.After(today.AddDate(0, 3, 0)) {
		return ErrDateTooFar
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		switch fe.Tag() {
		case "min":
			return "Name must be at least 2 characters"
		case "max":
			return "Name must be at most 100 characters"
		}
	case "whatsapp":
		switch fe.Tag() {
		case "min":
			return "WhatsApp number must be at least 10 characters"
		case "phone":
			return "Invalid phone number format"
		}
	case "course":
		return "Invalid course selected"
	case "date":
		if fe.Tag() == "dateshape" {
			return "Invalid date format (must be YYYY-MM-DD)"
		}
	case "time":
		if fe.Tag() == "timeshape" {
			return "Invalid time format (must be HH:MM)"
		}
	}
	return "Required"
}
