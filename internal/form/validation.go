package form

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"hostel-desk/internal/model"
)

// Messages shown on the notification surface.
const (
	MsgSelectRoom       = "Please select a room"
	MsgInvalidDates     = "Please enter valid check-in and check-out dates"
	MsgCheckOutOrder    = "Error: Check-out must be after Check-in"
	MsgNameRequired     = "Student name and roll number are required"
	MsgAdded            = "Booking added"
	MsgUpdated          = "Booking updated"
	MsgRoomsUnavailable = "Backend not reachable (rooms not loaded)"
	MsgRoomsEmpty       = "Rooms list is empty"
)

// ValidationError rejects a submission. The form stays open with its input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// submission orders the checks: room first, then dates, then the text fields.
// Only the first failing field is reported.
type submission struct {
	RoomID      string `validate:"required"`
	CheckIn     string `validate:"required,isodate"`
	CheckOut    string `validate:"required,isodate,afterdate=CheckIn"`
	StudentName string `validate:"required"`
	RollNo      string `validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("isodate", isoDate)
	v.RegisterValidation("afterdate", afterDate)
	return v
}

var isoDate validator.Func = func(fl validator.FieldLevel) bool {
	_, ok := model.Date(fl.Field().String()).Time()
	return ok
}

// afterDate requires the field to be a date strictly later than the named sibling.
var afterDate validator.Func = func(fl validator.FieldLevel) bool {
	other := fl.Parent().FieldByName(fl.Param())
	if !other.IsValid() {
		return false
	}
	return model.Date(fl.Field().String()).After(model.Date(other.String()))
}

// Validate checks v and returns a *ValidationError for the first problem found.
func Validate(v Values) error {
	err := validate.Struct(submission{
		RoomID:      v.RoomID,
		CheckIn:     v.CheckIn,
		CheckOut:    v.CheckOut,
		StudentName: v.StudentName,
		RollNo:      v.RollNo,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	return &ValidationError{Field: first.Field(), Message: message(first)}
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "RoomID":
		return MsgSelectRoom
	case "CheckIn", "CheckOut":
		if fe.Tag() == "afterdate" {
			return MsgCheckOutOrder
		}
		return MsgInvalidDates
	default:
		return MsgNameRequired
	}
}
