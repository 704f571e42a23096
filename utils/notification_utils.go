package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"firebase.google.com/go/v4/messaging"
	"gopkg.in/gomail.v2"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/models"
)

// SendPayoutEmail emails a payout receipt to the streamer
func SendPayoutEmail(streamer *models.Streamer, commission *models.Commission) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	if smtpHost == "" || smtpUser == "" {
		log.Println("SMTP not configured, skipping payout email")
		return nil
	}

	subject := fmt.Sprintf("Commission payout for %s", commission.App)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour commission of %.2f (%s, rate %.2f on %.2f) has been paid out.\n\nBest regards,\nYour agency team",
		streamer.Name, commission.CommissionAmount, commission.App, commission.Rate, commission.BaseAmount)

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", streamer.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send payout email to %s: %v", streamer.Email, err)
		return err
	}

	return nil
}

// SendPushNotification delivers a push message to a dashboard user's device
// via Firebase Cloud Messaging
func SendPushNotification(ctx context.Context, fcmToken, title, body string) error {
	if fcmToken == "" {
		return nil
	}
	if config.FirebaseApp == nil {
		return fmt.Errorf("firebase app not initialized")
	}

	client, err := config.FirebaseApp.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("failed to get messaging client: %w", err)
	}

	message := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := client.Send(ctx, message); err != nil {
		log.Printf("Failed to send push notification: %v", err)
		return err
	}

	return nil
}
