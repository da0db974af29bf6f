package conversation

// Menu buttons and command tokens. Matching on button text is exact;
// free-text tokens are matched case-insensitively.
const (
	btnBook        = "✂️ Book a haircut"
	btnMyBooking   = "📅 My appointment"
	btnSurvey      = "📝 Take the survey — get a discount"
	btnPrices      = "💲 Price list"
	btnAdminMenu   = "📋 Admin menu"
	btnBack        = "Back"
	btnYes         = "Yes"
	btnCancel      = "Cancel"
	btnCancelAppt  = "Cancel appointment"
	btnSurveyLeave = "Go back"

	btnAdminSchedule   = "📆 Schedule"
	btnAdminClients    = "👥 Clients"
	btnAdminThreshold  = "Change threshold"
	btnAdminPercentage = "Change percentage"
	btnAdminPriceAdd   = "Add price item"
	btnAdminPriceDel   = "Delete price item"

	langUkrainian = "Українська"
	langEnglish   = "English"
)

const (
	msgChooseLanguage = "Будь ласка, оберіть мову / Please choose a language:"
	msgLanguageSet    = "Language saved. Welcome to the barbershop bot!"
	msgWelcome        = "Welcome! Choose an option:"
	msgUnknownCommand = "Unknown command. Please use the menu buttons."
	msgGenericError   = "Something went wrong. Please try again later."

	msgAskFullName    = "Please enter your first and last name:"
	msgAskDate        = "Please choose a date (today included):"
	msgAskTime        = "Please choose a time:"
	msgNoSlots        = "Unfortunately there are no available times on that date. Please choose another date."
	msgPickOfferedDay = "Please choose a date from the offered options."
	msgPickOffered    = "Please choose a time from the offered options."
	msgSlotTaken      = "Unfortunately that time has just been taken. Please choose another time."
	msgBookingAborted = "Booking cancelled."

	msgNoAppointments    = "You have no active appointments."
	msgCancelDone        = "Your appointment has been cancelled."
	msgCancelDismissed   = "Cancellation dismissed."
	msgSurveyThanks      = "Thank you for taking part! Your discount will be applied at your next booking. 🎉"
	msgSurveyLeft        = "You have left the survey."
	msgPriceListEmpty    = "The price list is empty."
	msgAdminWelcome      = "Hello, Admin! Choose an option:"
	msgAdminOnly         = "This option is available to the administrator only."
	msgAskThreshold      = "Enter the new visit threshold (positive integer):"
	msgAskPercentage     = "Enter the new visit discount percentage (0-100):"
	msgBadNumber         = "That does not look like a valid number. Please try again."
	msgAskPriceItemName  = "Enter the name of the new price item:"
	msgAskPriceItemPrice = "Enter the price:"
	msgAskPriceItemID    = "Enter the id of the item to delete:"
)

// surveyQuestions are asked in order; answers are recorded positionally.
var surveyQuestions = [7]string{
	"1. Your first and last name?",
	"2. Your phone number?",
	"3. What is your hair length?",
	"4. Do you have a beard?",
	"5. Why did you choose us?",
	"6. What do you like, what do you dislike?",
	"7. What would we have to do for you to stop coming to us?",
}
