package validation

// Response messages.
const (
	MessagePassed = "Challenge completed successfully!"
	MessageFailed = "Security issues found"
)

// Response is the record reported to a submitter.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Points  *int     `json:"points,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}

// Response converts the outcome to its submitter-facing shape.
func (o Outcome) Response() Response {
	if o.Passed {
		points := o.PointsAwarded
		return Response{Success: true, Message: MessagePassed, Points: &points}
	}
	return Response{Success: false, Message: MessageFailed, Issues: o.Messages()}
}
