package jobs

import (
	"context"
	"errors"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"findaccommodation/data"
)

var ContactEmailType data.JobType = "contact_email"

type ContactEmailPayload struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Sender delivers mail. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ContactEmail forwards a contact form submission to the site's inbox.
type ContactEmail struct {
	Payload ContactEmailPayload
	Sender  Sender
	From    string
	To      string
	AppName string
}

func (j *ContactEmail) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j.Sender == nil {
		return errors.New("contact email: no mail sender configured")
	}

	message := gomail.NewMessage()
	message.SetHeader("From", j.From)
	message.SetHeader("To", j.To)
	message.SetHeader("Reply-To", j.Payload.Email)
	message.SetHeader("Subject", fmt.Sprintf("%s | Contact Form Submission | %s", j.Payload.Email, j.AppName))
	message.SetBody("text/html", fmt.Sprintf("Email: %s<br>Message: %s",
		html.EscapeString(j.Payload.Email),
		html.EscapeString(j.Payload.Message),
	))

	if err := j.Sender.DialAndSend(message); err != nil {
		return fmt.Errorf("contact email: %w", err)
	}

	return nil
}
