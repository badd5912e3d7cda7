package model

// ErrorLog records a client-reported failure so operators can triage it
// after the fact.
type ErrorLog struct {
	ID          string  `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Module      *string `json:"module,omitempty"`
	Severity    string  `json:"severity"`
	UserID      *string `json:"user_id,omitempty"`
	Username    *string `json:"username,omitempty"`
	FormPayload *string `json:"form_payload,omitempty"`
	StackTrace  *string `json:"stack_trace,omitempty"`
	IsRead      bool    `json:"is_read"`
}

type CreateErrorLogRequest struct {
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Module      *string `json:"module,omitempty"`
	Severity    *string `json:"severity,omitempty"`
	FormPayload *string `json:"form_payload,omitempty"`
	StackTrace  *string `json:"stack_trace,omitempty"`
}

type ErrorLogSearchParams struct {
	Severity   *string `json:"severity,omitempty"`
	Module     *string `json:"module,omitempty"`
	UnreadOnly bool    `json:"unread_only,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PerPage    *int    `json:"per_page,omitempty"`
}
