package contact

import (
	"golang.org/x/text/language"
)

// Catalog holds the status texts shown to the visitor.
type Catalog struct {
	Tag          language.Tag
	Success      string
	ErrorPrefix  string
	GenericError string
	NetworkError string
}

// French is the default catalog.
var French = Catalog{
	Tag:          language.French,
	Success:      "✓ Message reçu ! Nous vous répondrons dans les plus brefs délais.",
	ErrorPrefix:  "✗ Erreur: ",
	GenericError: "Une erreur est survenue. Veuillez réessayer.",
	NetworkError: "✗ Erreur réseau. Veuillez vérifier votre connexion et réessayer.",
}

// English is used for visitors that prefer English.
var English = Catalog{
	Tag:          language.English,
	Success:      "✓ Message received! We will get back to you as soon as possible.",
	ErrorPrefix:  "✗ Error: ",
	GenericError: "Something went wrong. Please try again.",
	NetworkError: "✗ Network error. Please check your connection and try again.",
}

var (
	catalogs = []Catalog{French, English}
	matcher  = language.NewMatcher([]language.Tag{French.Tag, English.Tag})
)

// CatalogFor picks the catalog closest to the preferred tags. French wins when
// nothing matches.
func CatalogFor(preferred ...language.Tag) Catalog {
	if len(preferred) == 0 {
		return French
	}
	_, idx, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return French
	}

	return catalogs[idx]
}

// CatalogForLocale accepts a BCP 47 tag or an Accept-Language header value.
func CatalogForLocale(locale string) Catalog {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return French
	}

	return CatalogFor(tags...)
}

// SuccessStatus is shown after a 2xx response.
func (c Catalog) SuccessStatus() Status {
	return Status{Kind: StatusSuccess, Text: c.Success}
}

// ServerErrorStatus is shown after a non-2xx response. reason is the backend's
// error text and may be empty.
func (c Catalog) ServerErrorStatus(reason string) Status {
	if reason == "" {
		reason = c.GenericError
	}

	return Status{Kind: StatusError, Text: c.ErrorPrefix + reason}
}

// NetworkErrorStatus is shown when the request never completed.
func (c Catalog) NetworkErrorStatus() Status {
	return Status{Kind: StatusError, Text: c.NetworkError}
}
