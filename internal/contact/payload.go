package contact

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	// CompositeHeader opens every composite message.
	CompositeHeader = "Nouveau message depuis le site Prestigia Agency:"

	// PhonePlaceholder stands in for an empty phone number in the composite
	// message. The phone JSON field keeps the raw value.
	PhonePlaceholder = "Non renseigné"
)

// SubmissionPayload is the body sent to the contact endpoint. It is built once
// per attempt by BuildPayload and has no mutators.
type SubmissionPayload struct {
	name    string
	email   string
	phone   string
	subject string
	message string
}

// BuildPayload derives the outbound payload from the raw input. The message
// field carries the composite text, not the raw message.
func BuildPayload(in FormInput) SubmissionPayload {
	return SubmissionPayload{
		name:    in.Name,
		email:   in.Email,
		phone:   in.Phone,
		subject: in.Subject,
		message: CompositeMessage(in),
	}
}

// CompositeMessage formats all fields into the multi-line summary the backend
// forwards to the agency.
func CompositeMessage(in FormInput) string {
	phone := in.Phone
	if phone == "" {
		phone = PhonePlaceholder
	}

	var b strings.Builder
	b.Grow(len(CompositeHeader) + len(in.Name) + len(in.Email) + len(phone) + len(in.Subject) + len(in.Message) + 64)
	b.WriteString(CompositeHeader)
	b.WriteString("\n\n")
	b.WriteString("Nom : " + in.Name + "\n")
	b.WriteString("Email : " + in.Email + "\n")
	b.WriteString("Téléphone : " + phone + "\n")
	b.WriteString("Sujet : " + in.Subject + "\n\n")
	b.WriteString("Message :\n")
	b.WriteString(in.Message)

	return b.String()
}

func (p SubmissionPayload) Name() string    { return p.name }
func (p SubmissionPayload) Email() string   { return p.email }
func (p SubmissionPayload) Phone() string   { return p.phone }
func (p SubmissionPayload) Subject() string { return p.subject }

// Message returns the composite message.
func (p SubmissionPayload) Message() string { return p.message }

type wirePayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// MarshalJSON encodes the payload with the endpoint's field names. Markup
// characters are kept literal; the body is never embedded in HTML.
func (p SubmissionPayload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wirePayload{
		Name:    p.name,
		Email:   p.email,
		Phone:   p.phone,
		Subject: p.subject,
		Message: p.message,
	}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
