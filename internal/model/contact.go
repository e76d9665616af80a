package model

// TimestampLayout is the format of ContactSubmission.Timestamp (YYYY-MM-DD HH:MM:SS).
const TimestampLayout = "2006-01-02 15:04:05"

// SubmissionInput carries the raw fields posted by the contact form.
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactSubmission is one stored contact-form entry.
type ContactSubmission struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // local civil time, TimestampLayout
}

// ListOptions carries pagination parameters for listing submissions.
// Results are ordered newest first.
type ListOptions struct {
	Limit  int
	Offset int
}
