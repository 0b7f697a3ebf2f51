package mailer

import (
	"fmt"
	"strings"

	"frontline-inventory/config"
	"frontline-inventory/models"

	"gopkg.in/gomail.v2"
)

// SendLowStockAlert mails the configured recipients a summary of every item
// at or below its minimum level. A missing SMTP configuration is not an
// error; the alert is simply skipped.
func SendLowStockAlert(items []models.Item) error {
	if config.SMTPHost == "" || config.MailTo == "" || len(items) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString("<h3>Low stock items</h3><table border=\"1\" cellpadding=\"4\">")
	body.WriteString("<tr><th>SKU</th><th>Name</th><th>Qty</th><th>Min</th></tr>")
	for _, item := range items {
		body.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td></tr>",
			item.SKU, item.Name, item.Qty, item.MinQty))
	}
	body.WriteString("</table>")

	toEmails := strings.Split(config.MailTo, ",")
	for i := range toEmails {
		toEmails[i] = strings.TrimSpace(toEmails[i])
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.MailFrom)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", fmt.Sprintf("Low stock alert: %d items", len(items)))
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}
	return nil
}
