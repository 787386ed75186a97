package utils

import (
	"fmt"
	"log"
	"skillfund/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through Sendgrid. Without an API key
// the message is logged instead so local development works offline.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("[EMAIL] (not sent, no API key) To: %s Subject: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("SkillFund", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] Error sending to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] Sendgrid returned %d for %s", resp.StatusCode, toEmail)
		return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}

	return nil
}

// SendWelcomeEmail greets a new user and carries the verification code
func SendWelcomeEmail(email, name, otp string) {
	body := getEmailTemplate("Welcome to SkillFund", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Welcome to SkillFund! Use the code below to verify your email address. It is valid for 10 minutes.</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>If you did not create this account, you can ignore this email.</p>
	`, name, otp))

	if err := SendEmail(email, name, "Verify your SkillFund account", body); err != nil {
		log.Printf("[EMAIL] Failed to send welcome email to %s: %v", email, err)
	}
}

// SendReviewDecisionEmail tells a student about the outcome of their request
func SendReviewDecisionEmail(email, name, decision, note string, price float64) {
	var content string
	if decision == "approved" {
		content = fmt.Sprintf(`
			<h2>Hi %s,</h2>
			<p>Good news! Your funding request has been <strong>approved</strong> with a purchase budget of %.2f.</p>
			<div class="info-box">%s</div>
			<p>You will be notified again once the funds are disbursed.</p>
		`, name, price, note)
	} else {
		content = fmt.Sprintf(`
			<h2>Hi %s,</h2>
			<p>Unfortunately your funding request has been <strong>rejected</strong>.</p>
			<div class="info-box">%s</div>
			<p>You are welcome to submit a new request with additional details.</p>
		`, name, note)
	}

	body := getEmailTemplate("Funding Request Update", content)
	if err := SendEmail(email, name, "Your SkillFund request was "+decision, body); err != nil {
		log.Printf("[EMAIL] Failed to send decision email to %s: %v", email, err)
	}
}

// SendPendingDigestEmail sends the admin a digest of stale pending requests
func SendPendingDigestEmail(email string, count int, oldest string) {
	body := getEmailTemplate("Pending Requests Digest", fmt.Sprintf(`
		<h2>Hello,</h2>
		<p>There are <strong>%d</strong> funding requests that have been pending for more than 7 days.</p>
		<div class="info-box">Oldest pending since: %s</div>
		<p>Please review them in the admin dashboard.</p>
	`, count, oldest))

	if err := SendEmail(email, "SkillFund Admin", "SkillFund: pending requests need review", body); err != nil {
		log.Printf("[EMAIL] Failed to send pending digest to %s: %v", email, err)
	}
}

// getEmailTemplate wraps content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B4332; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B4332; line-height: 1.6; }
			.content h2 { color: #1B4332; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F5E9; padding: 15px; border-radius: 4px; border-left: 4px solid #52B788; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				SkillFund &middot; Funding skills, one course at a time
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
