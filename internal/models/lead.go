package models

import "time"

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusClosed:
		return true
	}
	return false
}

// Lead is a visitor inquiry captured from the public intake form. Every
// field except Status is write-once at submission time.
type Lead struct {
	ID              string     `json:"id"`
	ParentName      string     `json:"parent_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	ChildName       string     `json:"child_name"`
	ProgramInterest string     `json:"program_interest"`
	Message         string     `json:"message"`
	PageURL         string     `json:"page_url"`
	Referrer        string     `json:"referrer"`
	UserAgent       string     `json:"user_agent"`
	Timezone        string     `json:"timezone"`
	Status          LeadStatus `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}
