// Package view renders the contact section as templ components.
package view

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/prestigia-agency/contact/internal/contact"
	"github.com/prestigia-agency/contact/internal/quickcontact"
)

// Element ids shared with the server's htmx swaps and the events script.
const (
	SectionID = "contact"
	StatusID  = "contact-status"
	SubmitID  = "contact-submit"
)

// Model is everything the contact section shows.
type Model struct {
	Input      contact.FormInput
	Submitting bool
	Status     contact.Status
	// Missing lists required fields the visitor left empty.
	Missing []string
	// Action is the form's POST target.
	Action string
	// QuickPath prefixes the quick-contact routes, e.g. "/quick".
	QuickPath string
}

type field struct {
	name     string
	label    string
	kind     string
	required bool
	value    string
}

func (m Model) fields() []field {
	return []field{
		{contact.FieldName, "Nom complet", "text", true, m.Input.Name},
		{contact.FieldEmail, "Email", "email", true, m.Input.Email},
		{contact.FieldPhone, "Téléphone", "tel", false, m.Input.Phone},
		{contact.FieldSubject, "Sujet", "text", true, m.Input.Subject},
		{contact.FieldMessage, "Message", "textarea", true, m.Input.Message},
	}
}

func (m Model) isMissing(name string) bool {
	for _, n := range m.Missing {
		if n == name {
			return true
		}
	}
	return false
}

type quickLink struct {
	channel quickcontact.Channel
	title   string
	detail  string
	label   string
}

var quickLinks = []quickLink{
	{quickcontact.ChannelEmail, "Email", quickcontact.EmailAddress, "Envoyer un email à Prestigia Agency"},
	{quickcontact.ChannelCall, "WhatsApp", "+" + quickcontact.WhatsAppPhone, "Contacter Prestigia Agency sur WhatsApp"},
	{quickcontact.ChannelMap, "Adresse", "Voir sur la carte", "Voir l'adresse de Prestigia Agency sur la carte"},
}

// ContactSection renders the quick-contact links, the form and the status
// region. The submit button is disabled while a submission is running.
func ContactSection(m Model) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<section id="`, SectionID, `" class="contact" aria-label="Section de contact Prestigia Agency">`)
		hw.raw(`<p class="eyebrow">CONTACT</p><h2>Discutons de votre projet</h2>`)

		hw.raw(`<div class="quick-contact" aria-label="Moyens de contact principaux">`)
		for _, link := range quickLinks {
			target, _ := quickcontact.TargetFor(link.channel)
			hw.raw(`<a class="quick-contact-item" href="`)
			hw.text(m.QuickPath + "/" + string(link.channel))
			hw.raw(`" aria-label="`)
			hw.text(link.label)
			hw.raw(`"`)
			if target.NewContext {
				hw.raw(` target="_blank" rel="noopener noreferrer"`)
			}
			hw.raw(`><h3>`)
			hw.text(link.title)
			hw.raw(`</h3><p>`)
			hw.text(link.detail)
			hw.raw(`</p></a>`)
		}
		hw.raw(`</div>`)

		hw.raw(`<form method="post" action="`)
		hw.text(m.Action)
		hw.raw(`" hx-post="`)
		hw.text(m.Action)
		hw.raw(`" hx-target="#`, SectionID, `" hx-swap="outerHTML"`)
		if m.Submitting {
			hw.raw(` aria-busy="true"`)
		}
		hw.raw(`>`)

		for _, f := range m.fields() {
			hw.raw(`<label for="contact-`, f.name, `">`)
			hw.text(f.label)
			if f.required {
				hw.raw(` <span aria-hidden="true">*</span>`)
			}
			hw.raw(`</label>`)

			if f.kind == "textarea" {
				hw.raw(`<textarea id="contact-`, f.name, `" name="`, f.name, `" rows="5"`)
			} else {
				hw.raw(`<input id="contact-`, f.name, `" name="`, f.name, `" type="`, f.kind, `"`)
			}
			if f.required {
				hw.raw(` required`)
			}
			if m.isMissing(f.name) {
				hw.raw(` aria-invalid="true"`)
			}
			if f.kind == "textarea" {
				hw.raw(`>`)
				hw.text(f.value)
				hw.raw(`</textarea>`)
			} else {
				hw.raw(` value="`)
				hw.text(f.value)
				hw.raw(`">`)
			}
		}

		hw.raw(`<button id="`, SubmitID, `" type="submit"`)
		if m.Submitting {
			hw.raw(` disabled`)
		}
		hw.raw(`>`)
		if m.Submitting {
			hw.text("Envoi en cours...")
		} else {
			hw.text("Envoyer le message")
		}
		hw.raw(`</button>`)
		hw.raw(`</form>`)

		if hw.err != nil {
			return hw.err
		}
		if err := StatusRegion(m.Status).Render(ctx, w); err != nil {
			return err
		}

		hw.raw(`</section>`)
		return hw.err
	})
}

// StatusRegion renders the live region holding the status message. It is
// always present so screen readers announce changes; it is empty when no
// message is visible.
func StatusRegion(s contact.Status) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}

		hw.raw(`<div id="`, StatusID, `" role="status" aria-live="polite"`)
		switch s.Kind {
		case contact.StatusSuccess:
			hw.raw(` class="status status-success"`)
		case contact.StatusError:
			hw.raw(` class="status status-error"`)
		default:
			hw.raw(` class="status"`)
		}
		hw.raw(`>`)
		if s.Visible() {
			hw.raw(`<p>`)
			hw.text(s.Text)
			hw.raw(`</p>`)
		}
		hw.raw(`</div>`)

		return hw.err
	})
}

// htmlWriter keeps the first write error, like generated templ code.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}
