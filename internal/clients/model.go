package clients

import "time"

// Client is a chat-scoped profile. A row is created lazily on first
// interaction and never deleted; survey completion and confirmed bookings
// mutate it.
type Client struct {
	ChatID                 int64
	FullName               string
	Phone                  string
	HairLength             string
	HasBeard               bool
	WhyChoseUs             string
	LikesDislikes          string
	Suggestions            string
	VisitCount             int
	SurveyDiscountEligible bool
	Language               string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// SurveyAnswers carries the seven onboarding survey answers in question order.
type SurveyAnswers struct {
	FullName      string
	Phone         string
	HairLength    string
	HasBeard      bool
	WhyChoseUs    string
	LikesDislikes string
	Suggestions   string
}

// DiscountProfile is the slice of a client profile the booking commit reads.
type DiscountProfile struct {
	VisitCount             int
	SurveyDiscountEligible bool
}
