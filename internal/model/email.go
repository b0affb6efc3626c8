package model

// EmailJob is one queued outbound message, serialized as JSON onto the
// email worker's Redis list.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
