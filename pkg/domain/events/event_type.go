package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	EventTypeCustomerRegistered   EventType = "Customer.Registered"
	EventTypeAccountOpened        EventType = "Account.Opened"
	EventTypeAccountStatusChanged EventType = "Account.StatusChanged"
	EventTypeTransactionCompleted EventType = "Transaction.Completed"
	EventTypeLoanStatusChanged    EventType = "Loan.StatusChanged"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}

// AllTypes lists every event type the services emit.
func AllTypes() []EventType {
	return []EventType{
		EventTypeCustomerRegistered,
		EventTypeAccountOpened,
		EventTypeAccountStatusChanged,
		EventTypeTransactionCompleted,
		EventTypeLoanStatusChanged,
	}
}
