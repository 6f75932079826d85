package models

// Operator mirrors the operators table.
type Operator struct {
	OperatorID string `db:"operator_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
