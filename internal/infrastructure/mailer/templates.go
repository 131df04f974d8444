package mailer

import (
	"html/template"

	"file-share-api/internal/domain/notification"
)

const footer = `<p>Best regards,<br>The File Sharing Team</p>`

var templates = map[notification.Kind]*template.Template{
	notification.KindUserRegistered: template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to File Sharing App, {{.Name}}!</h2>
  <p>Thank you for joining our platform. We're excited to have you on board!</p>
  <p>With our app, you can upload files, share time-limited links and upgrade a file for larger sizes and longer validity.</p>
  <p>Happy sharing!</p>
  ` + footer + `
</div>`)),

	notification.KindFileShared: template.Must(template.New("file_shared").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>A file has been shared with you!</h2>
  <p>You have received a file: <strong>{{.FileName}}</strong></p>
  <p>You can download this file using the link below:</p>
  <p><a href="{{.DownloadURL}}">Download File</a></p>
  <p><strong>Important:</strong> This link will expire on {{.ExpiresAt.Format "Jan 2, 2006 15:04 MST"}}.</p>
  ` + footer + `
</div>`)),

	notification.KindPaymentConfirmed: template.Must(template.New("payment_confirmed").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Payment Confirmation</h2>
  <p>Thank you for your payment!</p>
  <p><strong>Plan:</strong> {{.Plan}}</p>
  <p><strong>Amount:</strong> {{.Amount}} {{.Currency}}</p>
  <p><strong>Transaction ID:</strong> {{.TransactionID}}</p>
  <p><strong>Date:</strong> {{.TS.Format "Jan 2, 2006 15:04 MST"}}</p>
  <p>Your premium features have been activated and are now available for your use.</p>
  ` + footer + `
</div>`)),

	notification.KindFileExpired: template.Must(template.New("file_expired").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>File Expiration Notice</h2>
  <p>Your file <strong>{{.FileName}}</strong> has expired and its link no longer works.</p>
  <p>Expiration date and time: <strong>{{.ExpiresAt.Format "Jan 2, 2006 15:04 MST"}}</strong></p>
  <p>Upload it again and upgrade to a paid tier to keep files available for longer.</p>
  ` + footer + `
</div>`)),
}

func subject(e notification.Event) string {
	switch e.Kind {
	case notification.KindUserRegistered:
		return "Welcome to File Sharing App"
	case notification.KindFileShared:
		return "File Shared: " + e.FileName
	case notification.KindPaymentConfirmed:
		return "Payment Confirmation - " + e.Plan + " Plan"
	case notification.KindFileExpired:
		return "File Expiration Notice: " + e.FileName
	}
	return ""
}
