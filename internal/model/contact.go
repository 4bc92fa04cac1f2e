package model

import "time"

// ContactRequest is the payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=64"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
	Consent bool   `json:"consent" binding:"accepted"`
	// Website is a honeypot hidden from humans; it must stay empty.
	Website string `json:"website"`
}

// ContactMessage is an accepted contact form submission.
type ContactMessage struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	RemoteIP   string    `json:"remote_ip"`
	ReceivedAt time.Time `json:"received_at"`
}
