package api

// SlotsResponse answers GET /booking.
type SlotsResponse struct {
	Success bool     `json:"success"`
	Slots   []string `json:"slots"`
	Date    string   `json:"date"`
	Course  string   `json:"course"`
}

// BookingResponse answers a successful POST /booking.
type BookingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink"`
}

// ErrorResponse is the error payload for both endpoints. Details is only
// set for field validation failures and maps field name to messages.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}
