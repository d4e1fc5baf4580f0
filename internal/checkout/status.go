package checkout

type Status string

const (
	StatusInitiated        Status = "INITIATED"
	StatusPaymentPending   Status = "PAYMENT_PENDING"
	StatusPaymentCompleted Status = "PAYMENT_COMPLETED"
	StatusCompleted        Status = "COMPLETED"
	StatusFailed           Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusInitiated:        {StatusPaymentPending, StatusFailed},
	StatusPaymentPending:   {StatusPaymentCompleted, StatusFailed},
	StatusPaymentCompleted: {StatusCompleted, StatusFailed},
}

func CanTransitionTo(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
