package domain

// IssueLink is the persisted association between a Discord message and the
// GitHub issue created from it. Rows are written exactly once and never
// updated.
type IssueLink struct {
	SourceMessageID int64  `db:"source_message_id"`
	IssueURL        string `db:"issue_url"`
	IssueNumber     int    `db:"issue_number"`
}

// IssueRequest carries the raw input of one create-issue invocation. Labels
// and Assignees are comma-separated lists exactly as typed by the invoker.
type IssueRequest struct {
	MessageID string `validate:"required"`
	Title     string `validate:"required"`
	Labels    string
	Assignees string
}

// ComposedIssue holds the fields sent to the issue tracker.
type ComposedIssue struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// CreatedIssue identifies an issue the tracker created.
type CreatedIssue struct {
	Number int
	URL    string
}
