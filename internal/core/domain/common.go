package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy / LastUpdatedBy carry the ID of the operator that performed the action.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
