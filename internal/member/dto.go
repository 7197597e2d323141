package member

import "time"

// UpsertRequest carries the writable member fields for create and update.
type UpsertRequest struct {
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	MiddleName    string     `json:"middleName"`
	BirthDate     *time.Time `json:"birthDate"`
	ContactNumber string     `json:"contactNumber"`
	Status        string     `json:"status"`

	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`

	FieldWorkerID *uint `json:"fieldWorkerId"`
	ProgramID     *uint `json:"programId"`
}

// MembershipFeeRequest records the one-time membership fee.
type MembershipFeeRequest struct {
	Amount   float64    `json:"amount"`
	PaidDate *time.Time `json:"paidDate"`
}
