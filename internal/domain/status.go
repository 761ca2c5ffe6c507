package domain

// StatusKind selects how a status line is styled.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is a user-visible status line. The zero value shows nothing.
type Status struct {
	Kind    StatusKind
	Message string
}

func Info(msg string) Status    { return Status{Kind: StatusInfo, Message: msg} }
func Success(msg string) Status { return Status{Kind: StatusSuccess, Message: msg} }
func Failure(msg string) Status { return Status{Kind: StatusError, Message: msg} }

// Empty reports whether there is nothing to show.
func (s Status) Empty() bool {
	return s.Message == ""
}
