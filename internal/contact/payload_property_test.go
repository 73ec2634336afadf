//go:build property

package contact

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCompositeMessageProperties validates the composite layout for arbitrary input.
func TestCompositeMessageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Lines without newlines so the labelled lines can be located by index.
	field := gen.AlphaString()

	properties.Property("labelled lines appear in fixed order", prop.ForAll(
		func(name, email, phone, subject, message string) bool {
			in := FormInput{Name: name, Email: email, Phone: phone, Subject: subject, Message: message}
			lines := strings.Split(CompositeMessage(in), "\n")
			if len(lines) < 9 {
				return false
			}
			wantPhone := phone
			if phone == "" {
				wantPhone = PhonePlaceholder
			}

			return lines[0] == CompositeHeader &&
				lines[1] == "" &&
				lines[2] == "Nom : "+name &&
				lines[3] == "Email : "+email &&
				lines[4] == "Téléphone : "+wantPhone &&
				lines[5] == "Sujet : "+subject &&
				lines[6] == "" &&
				lines[7] == "Message :" &&
				strings.Join(lines[8:], "\n") == message
		},
		field, field, field, field, field,
	))

	properties.Property("placeholder appears iff phone is empty", prop.ForAll(
		func(phone string) bool {
			text := CompositeMessage(FormInput{Phone: phone, Name: "n", Email: "e", Subject: "s", Message: "m"})
			hasPlaceholder := strings.Contains(text, "Téléphone : "+PhonePlaceholder+"\n")

			return hasPlaceholder == (phone == "")
		},
		gen.OneGenOf(gen.Const(""), gen.AlphaString().SuchThat(func(s string) bool { return s != "" })),
	))

	properties.Property("raw message is the composite suffix", prop.ForAll(
		func(message string) bool {
			p := BuildPayload(FormInput{Name: "n", Email: "e", Subject: "s", Message: message})

			return strings.HasSuffix(p.Message(), "Message :\n"+message)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
