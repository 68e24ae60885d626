package domain

// PassengerType is the discount category applied to a route's base fare.
type PassengerType string

const (
	PassengerAdult   PassengerType = "adult"
	PassengerChild   PassengerType = "child"
	PassengerStudent PassengerType = "student"
	PassengerSenior  PassengerType = "senior"
)

func (p PassengerType) Valid() bool {
	switch p {
	case PassengerAdult, PassengerChild, PassengerStudent, PassengerSenior:
		return true
	}
	return false
}

// PaymentMethod is how the passenger paid the conductor.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentUPI:
		return true
	}
	return false
}

// Role of a chat turn. The store uses user/assistant; the model client
// translates assistant to its own vocabulary.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
