package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alauddinGen-Z/unilanguage/internal/booking"
)

// Client-facing error messages. Backend error text never reaches the
// client; it is logged with the request id instead.
const (
	msgMissingParams  = "Missing required parameters: date and course"
	msgBadDate        = "Invalid date format. Use YYYY-MM-DD"
	msgPastDate       = "Cannot book dates in the past"
	msgDateTooFar     = "Cannot book more than 3 months in advance"
	msgOutsideHours   = "Booking time must be between 09:00 and 17:00"
	msgUnknownCourse  = "Invalid course selected"
	msgValidation     = "Validation failed"
	msgBadBody        = "Invalid request body"
	msgSlotsFailed    = "Failed to fetch available slots"
	msgBookingFailed  = "Failed to create booking"
	msgBookingCreated = "Booking created successfully"
	msgInternal       = "Internal server error"
)

func getSlotsHandler(v *booking.Validator, svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		course := r.URL.Query().Get("course")

		if date == "" || course == "" {
			writeError(w, http.StatusBadRequest, msgMissingParams)
			return
		}

		calendarID, err := v.AvailabilityQuery(date, course)
		if err != nil {
			writeError(w, http.StatusBadRequest, ruleMessage(err))
			return
		}

		slots, err := svc.AvailableSlots(r.Context(), calendarID, date)
		if err != nil {
			log.Printf("availability query failed request_id=%s date=%s course=%q: %v",
				GetRequestID(r.Context()), date, course, err)
			writeError(w, http.StatusInternalServerError, msgSlotsFailed)
			return
		}

		writeJSON(w, http.StatusOK, SlotsResponse{
			Success: true,
			Slots:   slots,
			Date:    date,
			Course:  course,
		})
	}
}

func createBookingHandler(v *booking.Validator, svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw booking.RawRequest
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, http.StatusBadRequest, msgBadBody)
			return
		}

		req, err := v.Booking(raw)
		if err != nil {
			var verr *booking.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{
					Error:   msgValidation,
					Details: verr.Fields,
				})
				return
			}
			writeError(w, http.StatusBadRequest, ruleMessage(err))
			return
		}

		ref, err := svc.CreateBooking(r.Context(), req)
		if err != nil {
			log.Printf("booking creation failed request_id=%s date=%s time=%s course=%q: %v",
				GetRequestID(r.Context()), req.Date, req.Time, req.Course, err)
			writeError(w, http.StatusInternalServerError, msgBookingFailed)
			return
		}

		writeJSON(w, http.StatusOK, BookingResponse{
			Success:   true,
			Message:   msgBookingCreated,
			EventID:   ref.ID,
			EventLink: ref.Link,
		})
	}
}

// ruleMessage maps a business-rule error to its client-facing message.
func ruleMessage(err error) string {
	switch {
	case errors.Is(err, booking.ErrDateFormat):
		return msgBadDate
	case errors.Is(err, booking.ErrPastDate):
		return msgPastDate
	case errors.Is(err, booking.ErrDateTooFar):
		return msgDateTooFar
	case errors.Is(err, booking.ErrOutsideHours):
		return msgOutsideHours
	case errors.Is(err, booking.ErrUnknownCourse):
		return msgUnknownCourse
	default:
		return msgInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
