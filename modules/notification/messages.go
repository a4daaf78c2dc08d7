package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// credentialsTemplate is the WhatsApp template pre-approved for sending
// account credentials. Its body takes four positional parameters:
// name, user id, password, login url.
const credentialsTemplate = "aastha_chits_credentials"

var (
	credentialEmailTmpl = template.Must(template.New("credential_email").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Your account has been created successfully.</p>
<ul>
  <li><strong>User ID:</strong> {{.UserID}}</li>
  <li><strong>Password:</strong> {{.Password}}</li>
</ul>
<p>
  Login here:
  <a href="{{.LoginURL}}">{{.LoginURL}}</a>
</p>
<p style="color:#777;font-size:12px">
  Please change your password after first login.
</p>`))

	transactionEmailTmpl = template.Must(template.New("transaction_email").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Your transaction has been <strong>{{.Status}}</strong>.</p>

<table border="1" cellpadding="8" cellspacing="0">
  <tr><td><strong>Chit Plan</strong></td><td>{{.PlanName}}</td></tr>
  <tr><td><strong>Amount</strong></td><td>&#8377;{{.Amount}}</td></tr>
  <tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
  <tr><td><strong>Status</strong></td><td>{{.Status}}</td></tr>
</table>

<p>If you have any questions, feel free to reach out.</p>
<p>with Regards,<br/> Team Aastha Chits</p>`))

	brochureEmailTmpl = template.Must(template.New("brochure_email").Parse(`
<p>Hi {{.Name}},</p>
<p>Thanks for your interest in Aastha Chits.</p>
<p><a href="{{.DownloadLink}}">Click here to download the brochure</a></p>
<p>(This link expires in {{.Validity}})</p>`))
)

// CredentialsMessage builds the multi-channel message that delivers a new
// member's login credentials: an HTML email plus the approved WhatsApp
// template with the same details.
func CredentialsMessage(rcpt Recipient, userID, password, loginURL string) (Message, error) {
	var body bytes.Buffer
	err := credentialEmailTmpl.Execute(&body, struct {
		Name, UserID, Password, LoginURL string
	}{rcpt.Name, userID, password, loginURL})
	if err != nil {
		return Message{}, fmt.Errorf("render credential email: %w", err)
	}

	return Message{
		Recipient: rcpt,
		Subject:   "Your Aastha Chits Credentials",
		HTMLBody:  body.String(),
		Template:  credentialsTemplate,
		Params:    []string{rcpt.Name, userID, password, loginURL},
		Tag:       "credentials",
	}, nil
}

// TransactionMessage builds the email-only message sent when a transaction
// reaches a terminal status.
func TransactionMessage(rcpt Recipient, planName string, amount float64, status string, date time.Time) (Message, error) {
	var body bytes.Buffer
	err := transactionEmailTmpl.Execute(&body, struct {
		Name, PlanName, Status, Date string
		Amount                       float64
	}{
		Name:     rcpt.Name,
		PlanName: planName,
		Status:   status,
		Date:     date.Format("Mon Jan 02 2006"),
		Amount:   amount,
	})
	if err != nil {
		return Message{}, fmt.Errorf("render transaction email: %w", err)
	}

	return Message{
		Recipient: rcpt,
		Subject:   fmt.Sprintf("Transaction %s – %s", status, planName),
		HTMLBody:  body.String(),
		Tag:       "transaction",
	}, nil
}

// BrochureLinkMessage builds the email carrying a tokenized brochure
// download link.
func BrochureLinkMessage(rcpt Recipient, downloadLink string, validity time.Duration) (Message, error) {
	var body bytes.Buffer
	err := brochureEmailTmpl.Execute(&body, struct {
		Name, DownloadLink, Validity string
	}{rcpt.Name, downloadLink, formatValidity(validity)})
	if err != nil {
		return Message{}, fmt.Errorf("render brochure email: %w", err)
	}

	return Message{
		Recipient: rcpt,
		Subject:   "Aastha Chits - Secure Brochure Link",
		HTMLBody:  body.String(),
		Tag:       "brochure",
	}, nil
}

func formatValidity(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	minutes := int(d / time.Minute)
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
