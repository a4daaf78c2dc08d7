package enroll

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/aasthachits/chitfund/modules/notification"
)

var enrollmentTmpl = template.Must(template.New("enrollment").Parse(`<h1>New enrollment details:</h1>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Plan:</strong> {{.Plan}}</p>`))

var contactTmpl = template.Must(template.New("contact").Parse(`<p><b>Name:</b> {{.Name}}</p>
<p><b>Contact Number:</b> {{.ContactNumber}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Subject:</b> {{.Subject}}</p>
<p><b>Message:</b><br/>{{.Message}}</p>`))

func enrollmentMessage(admin notification.Recipient, req EnrollmentRequest) (notification.Message, error) {
	var body bytes.Buffer
	if err := enrollmentTmpl.Execute(&body, req); err != nil {
		return notification.Message{}, fmt.Errorf("render enrollment email: %w", err)
	}

	return notification.Message{
		Recipient: admin,
		Subject:   fmt.Sprintf("New Enrollment for %s", req.Plan),
		HTMLBody:  body.String(),
		Tag:       "enrollment",
	}, nil
}

func contactMessage(admin notification.Recipient, form ContactForm) (notification.Message, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, form); err != nil {
		return notification.Message{}, fmt.Errorf("render contact email: %w", err)
	}

	return notification.Message{
		Recipient: admin,
		Subject:   fmt.Sprintf("Contact Form: %s", form.Subject),
		HTMLBody:  body.String(),
		Tag:       "contact",
	}, nil
}
