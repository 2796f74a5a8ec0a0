// Package types defines core data structures for apptrack.
package types

// ApplicationRecord is one tracked job application as the backend returns it.
// Dates travel as ISO 8601 strings; the backend owns their precision.
type ApplicationRecord struct {
	ID             string `json:"id"`
	CompanyName    string `json:"company_name"`
	JobTitle       string `json:"job_title"`
	Status         string `json:"status"`
	Priority       string `json:"priority,omitempty"`
	Source         string `json:"source,omitempty"`
	Location       string `json:"location,omitempty"`
	ContactPerson  string `json:"contact_person,omitempty"`
	Notes          string `json:"notes,omitempty"`
	AppliedDate    string `json:"applied_date,omitempty"`
	LastUpdateDate string `json:"last_update_date,omitempty"`
	InterviewDate  string `json:"interview_date,omitempty"`
	UrgencyLevel   string `json:"urgency_level,omitempty"`
	AutoCreated    *bool  `json:"auto_created,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// EmailRecord is a classified email as the backend returns it. ApplicationID
// is a weak reference — empty means the email is not linked to any application.
type EmailRecord struct {
	ID             string `json:"id"`
	Subject        string `json:"subject"`
	Sender         string `json:"sender,omitempty"`
	SentAt         string `json:"sent_at,omitempty"`
	Classification string `json:"classification,omitempty"`
	ApplicationID  string `json:"application_id,omitempty"`
	Snippet        string `json:"snippet,omitempty"`
}

// CreateApplicationRequest is the payload for creating an application.
type CreateApplicationRequest struct {
	CompanyName   string `json:"company_name"`
	JobTitle      string `json:"job_title"`
	Status        string `json:"status,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Location      string `json:"location,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Source        string `json:"source,omitempty"`
	AppliedDate   string `json:"applied_date,omitempty"`
}

// Status constants. The backend enum is a fixed ordered set; unknown values
// coming off the wire are displayed as-is, never rejected.
const (
	StatusApplied       = "APPLIED"
	StatusAcknowledged  = "ACKNOWLEDGED"
	StatusScreening     = "SCREENING"
	StatusInterview     = "INTERVIEW"
	StatusTechnicalTest = "TECHNICAL_TEST"
	StatusOffer         = "OFFER"
	StatusRejected      = "REJECTED"
	StatusAccepted      = "ACCEPTED"
	StatusWithdrawn     = "WITHDRAWN"
)

// ValidStatuses is the ordered set of known status values.
var ValidStatuses = []string{
	StatusApplied, StatusAcknowledged, StatusScreening, StatusInterview,
	StatusTechnicalTest, StatusOffer, StatusRejected, StatusAccepted,
	StatusWithdrawn,
}

// IsValidStatus checks if a status string is one of the known values.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// statusLabels maps known statuses to short display labels.
var statusLabels = map[string]string{
	StatusApplied:       "Applied",
	StatusAcknowledged:  "Acknowledged",
	StatusScreening:     "Screening",
	StatusInterview:     "Interview",
	StatusTechnicalTest: "Technical test",
	StatusOffer:         "Offer",
	StatusRejected:      "Rejected",
	StatusAccepted:      "Accepted",
	StatusWithdrawn:     "Withdrawn",
}

// StatusLabel returns the display label for a status. Unknown statuses pass
// through raw so a newer backend never breaks the table.
func StatusLabel(s string) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

// Priority constants.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// ValidPriorities is the set of allowed priority values.
var ValidPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p string) bool {
	for _, v := range ValidPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// Urgency constants.
const (
	UrgencyNormal = "NORMAL"
	UrgencyHigh   = "HIGH"
	UrgencyUrgent = "URGENT"
)

// Email classification constants.
const (
	ClassAck       = "ACK"
	ClassRejected  = "REJECTED"
	ClassInterview = "INTERVIEW"
	ClassOffer     = "OFFER"
	ClassRequest   = "REQUEST"
	ClassOther     = "OTHER"
)

// AutoCreatedMarker is the substring the backend embeds in the source field
// of applications it detected from email content. Records carrying an
// explicit auto_created boolean take precedence over this heuristic.
const AutoCreatedMarker = "Détecté automatiquement"

// ProcessResult is the response of the backend's auto-process operation.
// Its counters summarize what the run did; they are never treated as the
// new truth — the store is rebuilt from a full re-fetch afterwards.
type ProcessResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Results ProcessCounts `json:"results"`
}

// ProcessCounts holds the per-run counters of an auto-process call.
type ProcessCounts struct {
	ProcessedEmails     int            `json:"processed_emails"`
	CreatedApplications int            `json:"created_applications"`
	UpdatedApplications int            `json:"updated_applications"`
	LinkedEmails        int            `json:"linked_emails"`
	Errors              []ProcessError `json:"errors,omitempty"`
}

// ProcessError describes one email the auto-process run could not handle.
type ProcessError struct {
	EmailID string `json:"email_id"`
	Subject string `json:"subject,omitempty"`
	Error   string `json:"error"`
}

// Summary holds the backend's aggregate processing metrics.
type Summary struct {
	TotalApplications       int            `json:"total_applications"`
	AutoCreatedApplications int            `json:"auto_created_applications"`
	ManualApplications      int            `json:"manual_applications"`
	TotalEmails             int            `json:"total_emails"`
	LinkedEmails            int            `json:"linked_emails"`
	UnprocessedEmails       int            `json:"unprocessed_emails"`
	StatusBreakdown         map[string]int `json:"status_breakdown"`
	AutomationRate          float64        `json:"automation_rate"`
}

// StatusCount returns the breakdown count for a status, 0 when absent.
func (s *Summary) StatusCount(status string) int {
	if s == nil || s.StatusBreakdown == nil {
		return 0
	}
	return s.StatusBreakdown[status]
}
