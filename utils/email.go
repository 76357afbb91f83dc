package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// NotifyBookingStatus emails the customer about a booking transition.
// Delivery is best effort; callers run it in a goroutine and failures
// only get logged, they never fail the transition.
func NotifyBookingStatus(to, customerName, serviceTitle, status string) {
	if to == "" {
		return
	}
	subject := fmt.Sprintf("Your booking for %s is %s", serviceTitle, status)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <b>%s</b> is now <b>%s</b>.</p>",
		customerName, serviceTitle, status,
	)
	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Failed to send booking notification to %s: %v", to, err)
	}
}
