package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/smilecare/dental-clinic-api/models"
)

// SendBookingConfirmation emails the patient their reference number. It is a
// no-op when SMTP is not configured, so booking never depends on mail being
// set up.
func SendBookingConfirmation(appointment *models.Appointment) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	doctor := appointment.Doctor
	if doctor == "" {
		doctor = "Any available doctor"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", appointment.Email)
	m.SetHeader("Subject", fmt.Sprintf("Appointment Confirmation - %s", appointment.ReferenceNumber))
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Reference number:</strong> %s</li>
		</ul>
		<p>You can check your appointment status at any time using the reference number.</p>
		<p>Best regards,</p>
		<p>Your Dental Clinic</p>
	`, appointment.Name, appointment.Service, doctor,
		appointment.Date, appointment.Time, appointment.ReferenceNumber)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		host,
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}
