// Package session holds per-client conversation state. State is keyed by chat
// id and lives behind a Store interface so single-instance deployments can use
// process memory while scaled deployments centralize it in Redis.
package session

// State is the conversation state machine node a client is currently in.
type State string

const (
	StateLanguageChoice     State = "language_choice"
	StateMenu               State = "menu_selection"
	StateAppointmentName    State = "appointment_name"
	StateAppointmentDate    State = "appointment_date"
	StateAppointmentTime    State = "appointment_time"
	StateConfirmAppointment State = "confirm_appointment"
	StateSurvey             State = "survey"
	StateCancelAppointment  State = "cancel_appointment"
	StateAdminMenu          State = "admin_menu"
	StateAdminThreshold     State = "admin_threshold"
	StateAdminPercentage    State = "admin_percentage"
	StateAdminPriceName     State = "admin_price_name"
	StateAdminPricePrice    State = "admin_price_price"
	StateAdminPriceDelete   State = "admin_price_delete"
)

// AppointmentDraft is the in-progress appointment being assembled.
type AppointmentDraft struct {
	FullName     string   `json:"full_name,omitempty"`
	Date         string   `json:"date,omitempty"`
	Time         string   `json:"time,omitempty"`
	OfferedTimes []string `json:"offered_times,omitempty"`
}

// SurveyDraft is the in-progress survey.
type SurveyDraft struct {
	QuestionIndex int      `json:"question_index"`
	Answers       []string `json:"answers,omitempty"`
}

// Session is the per-client ephemeral conversation state.
type Session struct {
	ChatID      int64             `json:"chat_id"`
	State       State             `json:"state"`
	Language    string            `json:"language,omitempty"`
	Appointment *AppointmentDraft `json:"appointment,omitempty"`
	Survey      *SurveyDraft      `json:"survey,omitempty"`

	// CancelTargetID is the nearest upcoming appointment offered for
	// cancellation while in StateCancelAppointment.
	CancelTargetID string `json:"cancel_target_id,omitempty"`

	// PriceDraftName buffers the item name between the two admin
	// price-entry states.
	PriceDraftName string `json:"price_draft_name,omitempty"`
}

// New returns a fresh session at the given initial state.
func New(chatID int64, state State) *Session {
	return &Session{ChatID: chatID, State: state}
}

// ResetScratch discards all in-progress flow data but keeps identity and
// language.
func (s *Session) ResetScratch() {
	s.Appointment = nil
	s.Survey = nil
	s.CancelTargetID = ""
	s.PriceDraftName = ""
}
