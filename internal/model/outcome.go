package model

// Outcome is the terminal state of one contact pipeline run.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRateLimited
	OutcomeInvalid
	OutcomeSpamRejected
	OutcomeDeliveryFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSpamRejected:
		return "spam_rejected"
	case OutcomeDeliveryFailed:
		return "delivery_failed"
	default:
		return "unknown"
	}
}
