package domain

// Operator is a shop team member (cashier). Operators are soft-retired, never
// deleted, so historical records keep resolving.
type Operator struct {
	OperatorID string `json:"operatorID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}
