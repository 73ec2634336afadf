package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/prestigia-agency/contact/internal/contact"
)

func render(t *testing.T, m Model) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(PageOptions{Title: "Contact", EventsPath: "/ws"}, ContactSection(m)).Render(context.Background(), &buf))

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func baseModel() Model {
	return Model{Action: "/contact", QuickPath: "/quick"}
}

func TestSubmitButtonDisabledWhileSubmitting(t *testing.T) {
	m := baseModel()

	button := findByID(render(t, m), SubmitID)
	require.NotNil(t, button)
	_, disabled := attr(button, "disabled")
	assert.False(t, disabled)
	assert.Equal(t, "Envoyer le message", text(button))

	m.Submitting = true
	button = findByID(render(t, m), SubmitID)
	require.NotNil(t, button)
	_, disabled = attr(button, "disabled")
	assert.True(t, disabled)
	assert.Equal(t, "Envoi en cours...", text(button))
}

func TestStatusRegion(t *testing.T) {
	tests := []struct {
		name      string
		status    contact.Status
		wantClass string
		wantText  string
	}{
		{"absent", contact.Status{}, "status", ""},
		{"success", contact.French.SuccessStatus(), "status status-success", contact.French.Success},
		{"error", contact.French.ServerErrorStatus("Invalid email"), "status status-error", "✗ Erreur: Invalid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseModel()
			m.Status = tt.status

			region := findByID(render(t, m), StatusID)
			require.NotNil(t, region)
			class, _ := attr(region, "class")
			assert.Equal(t, tt.wantClass, class)
			role, _ := attr(region, "role")
			assert.Equal(t, "status", role)
			assert.Equal(t, tt.wantText, text(region))
		})
	}
}

func TestFieldsKeepValuesAndEscape(t *testing.T) {
	m := baseModel()
	m.Input = contact.FormInput{
		Name:    `Amina "<b>"`,
		Email:   "amina@example.com",
		Message: "</textarea><script>alert(1)</script>",
	}
	m.Missing = []string{contact.FieldSubject}

	doc := render(t, m)

	name := findByID(doc, "contact-name")
	require.NotNil(t, name)
	value, _ := attr(name, "value")
	assert.Equal(t, `Amina "<b>"`, value)
	_, required := attr(name, "required")
	assert.True(t, required)

	phone := findByID(doc, "contact-phone")
	require.NotNil(t, phone)
	_, required = attr(phone, "required")
	assert.False(t, required, "phone is optional")

	subject := findByID(doc, "contact-subject")
	invalid, _ := attr(subject, "aria-invalid")
	assert.Equal(t, "true", invalid)

	message := findByID(doc, "contact-message")
	require.NotNil(t, message)
	assert.Equal(t, "</textarea><script>alert(1)</script>", text(message))

	for _, s := range findAll(doc, "script") {
		assert.NotContains(t, text(s), "alert(1)")
	}
}

func TestQuickContactLinks(t *testing.T) {
	doc := render(t, baseModel())

	hrefs := map[string]string{}
	for _, a := range findAll(doc, "a") {
		href, _ := attr(a, "href")
		target, _ := attr(a, "target")
		hrefs[href] = target
	}

	assert.Equal(t, "", hrefs["/quick/email"], "email navigates the current context")
	assert.Equal(t, "_blank", hrefs["/quick/call"])
	assert.Equal(t, "_blank", hrefs["/quick/map"])
}

func TestPageEventsScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(PageOptions{Title: "x"}, nil).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "data-events")
	assert.Contains(t, buf.String(), `<html lang="fr">`)

	buf.Reset()
	require.NoError(t, Page(PageOptions{Title: "x", Lang: "en", EventsPath: "/ws"}, nil).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `data-events="/ws"`)
	assert.Contains(t, buf.String(), `<html lang="en">`)
}
