package model

// PaymentStatus classifies a rent obligation on the report date.
type PaymentStatus string

const (
	StatusReceived PaymentStatus = "RECEIVED"
	StatusOverdue  PaymentStatus = "OVERDUE"
	StatusNotDue   PaymentStatus = "NOT_DUE"
)

// Statuses lists every status in report order.
var Statuses = []PaymentStatus{StatusReceived, StatusOverdue, StatusNotDue}

// Label returns the human-readable status used in spreadsheet output.
func (s PaymentStatus) Label() string {
	switch s {
	case StatusReceived:
		return "получен"
	case StatusOverdue:
		return "просрочен"
	case StatusNotDue:
		return "срок не наступил"
	default:
		return string(s)
	}
}
