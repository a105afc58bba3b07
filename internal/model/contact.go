package model

// ContactRequest is the raw JSON body of POST /api/contact.
// Fields not listed here are ignored by the decoder.
type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Service  string `json:"service,omitempty"`
	Modality string `json:"modality,omitempty"`
	Honeypot string `json:"honeypot,omitempty"`
}

// Submission is a contact form payload that passed validation.
// All text fields are already normalized.
type Submission struct {
	Name     string
	Email    string
	Message  string
	WhatsApp string
	Service  Service
	Modality Modality
	Honeypot string
}

// AsRequest converts a normalized submission back into its wire form.
func (s Submission) AsRequest() ContactRequest {
	return ContactRequest{
		Name:     s.Name,
		Email:    s.Email,
		Message:  s.Message,
		WhatsApp: s.WhatsApp,
		Service:  string(s.Service),
		Modality: string(s.Modality),
		Honeypot: s.Honeypot,
	}
}

// FieldError describes one violated field rule. Reason is user facing.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
