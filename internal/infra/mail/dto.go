package mail

import "gopkg.in/gomail.v2"

type PartialFailureEmailData struct {
	SubmissionID string
	Name         string
	Email        string
	Phone        string
	Message      string
	RecordID     string
	FailedStage  string
	ErrorCode    string
	Reason       string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Owner    string

	dial func(m *gomail.Message) error
}
