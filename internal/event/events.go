package event

import "time"

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	CreateDate time.Time `json:"createDate"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	CustomerID int64     `json:"customerId"`
	Timestamp  time.Time `json:"timestamp"`
}

type CreditEventPayload struct {
	CreditID             int64     `json:"creditId"`
	CreditCode           string    `json:"creditCode"`
	CustomerID           int64     `json:"customerId"`
	CreditValue          string    `json:"creditValue"`
	NumberOfInstallments int       `json:"numberOfInstallments"`
	DayFirstInstallment  time.Time `json:"dayFirstInstallment"`
	Status               string    `json:"status"`
}

type CreditIssuedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Payload   CreditEventPayload `json:"payload"`
}

type CreditStatusChangedEvent struct {
	CreditID   int64     `json:"creditId"`
	CreditCode string    `json:"creditCode"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	Timestamp  time.Time `json:"timestamp"`
}
