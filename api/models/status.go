package models

type ApplicationStatus string

const (
	StatusPendingProposal ApplicationStatus = "pending_proposal"
	StatusPending         ApplicationStatus = "pending"
	StatusUnderReview     ApplicationStatus = "under_review"
	StatusShortlisted     ApplicationStatus = "shortlisted"
	StatusRejected        ApplicationStatus = "rejected"
)

var ValidStatuses = map[ApplicationStatus]string{
	StatusPendingProposal: "pending_proposal",
	StatusPending:         "pending",
	StatusUnderReview:     "under_review",
	StatusShortlisted:     "shortlisted",
	StatusRejected:        "rejected",
}

// allowedTransitions is the workflow table: an application only moves forward.
// shortlisted and rejected are terminal; administrators can still force any
// enumerated value through the admin surface.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPendingProposal: {StatusPending},
	StatusPending:         {StatusUnderReview, StatusRejected},
	StatusUnderReview:     {StatusShortlisted, StatusRejected},
	StatusShortlisted:     {},
	StatusRejected:        {},
}

func IsValidStatus(s string) bool {
	_, ok := ValidStatuses[ApplicationStatus(s)]
	return ok
}

func CanTransition(from, to ApplicationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

var ValidPaymentStatuses = map[PaymentStatus]string{
	PaymentPending:  "pending",
	PaymentApproved: "approved",
	PaymentRejected: "rejected",
}

func IsValidPaymentStatus(s string) bool {
	_, ok := ValidPaymentStatuses[PaymentStatus(s)]
	return ok
}
