package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"rentafacil/internal/db"
	"rentafacil/internal/entities"
)

// SenderService builds and dispatches reservation status notices. Email and
// SMS sends run in goroutines so the booking path never waits on a provider.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) ReservationStatusChanged(res *db.Reservation, vehicle *db.Vehicle, customer *db.Customer, status string) {
	s.sendReservationEmail(res, vehicle, customer, status)
	s.sendReservationSMS(res, customer, status)
}

func (s *SenderService) sendReservationEmail(res *db.Reservation, vehicle *db.Vehicle, customer *db.Customer, status string) {
	emailData := entities.ReservationEmailData{
		CustomerName:       customer.Name,
		ConfirmationNumber: res.ConfirmationNumber,
		VehicleModel:       vehicle.Model,
		VehicleType:        vehicle.Type,
		StartDateFormatted: res.StartDate.UTC().Format("02 Jan 2006"),
		EndDateFormatted:   res.EndDate.UTC().Format("02 Jan 2006"),
		TotalPrice:         res.TotalPrice,
		Status:             status,
		CurrentYear:        time.Now().UTC().Year(),
	}

	emailSubject := fmt.Sprintf("Your RentaFacil reservation is %s - %s", status, emailData.ConfirmationNumber)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at RentaFacil is %s.\n\n"+
			"Reservation Details:\n"+
			"Confirmation Number: %s\n"+
			"Vehicle: %s (%s)\n"+
			"Pick-up: %s\n"+
			"Return: %s\n"+
			"Total Price: %.2f\n\n"+
			"Thank you for choosing RentaFacil.",
		emailData.CustomerName, status, emailData.ConfirmationNumber,
		emailData.VehicleModel, emailData.VehicleType,
		emailData.StartDateFormatted, emailData.EndDateFormatted, emailData.TotalPrice,
	)

	tmplPath := filepath.Join("internal", "templates", "reservation_email.html")
	var htmlBody string
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Could not parse email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: Could not execute email template for reservation %s: %v", emailData.ConfirmationNumber, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERT (async): Email for reservation %s failed: %v", emailData.ConfirmationNumber, err)
		}
	}(customer.Email, customer.Name, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendReservationSMS(res *db.Reservation, customer *db.Customer, status string) {
	smsMessage := fmt.Sprintf("RentaFacil: Reservation %s has been %s!\nPick-up: %s.\nMore details in your email.",
		res.ConfirmationNumber, status,
		res.StartDate.UTC().Format("02/01/2006"),
	)

	go func(toPhone, message, confirmationNumber string) {
		if err := SendSMS(toPhone, message); err != nil {
			log.Printf("ALERT (async): SMS for reservation %s to %s failed: %v", confirmationNumber, toPhone, err)
		}
	}(customer.Phone, smsMessage, res.ConfirmationNumber)
}
