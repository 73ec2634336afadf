package contact

import (
	"net/url"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
)

// Form field names, shared by the HTML form and the JSON payload.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// FormInput holds the raw field values captured when the visitor submits.
type FormInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Missing returns the required fields that are empty, in form order.
// Phone is optional.
func (in FormInput) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{FieldName, in.Name},
		{FieldEmail, in.Email},
		{FieldSubject, in.Subject},
		{FieldMessage, in.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}

	return missing
}

// IsZero reports whether every field is empty.
func (in FormInput) IsZero() bool {
	return in == FormInput{}
}

// FromValues reads a posted form. Values are kept verbatim. A non-nil error
// lists the required fields that were left empty; the returned input is still
// populated so the surface can be re-rendered with what the visitor typed.
func FromValues(values url.Values) (FormInput, error) {
	in := FormInput{
		Name:    values.Get(FieldName),
		Email:   values.Get(FieldEmail),
		Phone:   values.Get(FieldPhone),
		Subject: values.Get(FieldSubject),
		Message: values.Get(FieldMessage),
	}

	missing := in.Missing()
	if len(missing) == 0 {
		return in, nil
	}

	var errs contacterrors.ValidationErrorCollection
	for _, name := range missing {
		errs.AddField(name, "required")
	}

	return in, errs.ToContactError().WithComponent("form")
}
