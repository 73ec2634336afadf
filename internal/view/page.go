package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// PageOptions controls the document around the contact section.
type PageOptions struct {
	Title string
	Lang  string
	// EventsPath is the WebSocket route streaming controller events. Empty
	// disables live updates.
	EventsPath string
}

const htmxScript = `https://unpkg.com/htmx.org@2.0.4`

// htmxConfig lets htmx swap 4xx responses: a refused or incomplete form comes
// back as a section with the field markers set.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[234]..","swap":true},{"code":"...","swap":false,"error":true}]}`

// eventsScript keeps the submit button in sync with the controller state
// while another tab or the CLI is submitting.
const eventsScript = `(function(){
var path=document.currentScript.dataset.events;
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+path);
ws.onmessage=function(m){
var e=JSON.parse(m.data);
var b=document.getElementById("` + SubmitID + `");
if(b){b.disabled=e.state==="submitting";}
};
})();`

// Page wraps body in a complete HTML document.
func Page(opts PageOptions, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := opts.Lang
		if lang == "" {
			lang = "fr"
		}
		hw := &htmlWriter{w: w}

		hw.raw(`<!DOCTYPE html><html lang="`)
		hw.text(lang)
		hw.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<meta name="htmx-config" content="`)
		hw.text(htmxConfig)
		hw.raw(`"><title>`)
		hw.text(opts.Title)
		hw.raw(`</title><script src="`, htmxScript, `" defer></script></head><body><main>`)
		if hw.err != nil {
			return hw.err
		}

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		hw.raw(`</main>`)
		if opts.EventsPath != "" {
			hw.raw(`<script data-events="`)
			hw.text(opts.EventsPath)
			hw.raw(`">`, eventsScript, `</script>`)
		}
		hw.raw(`</body></html>`)

		return hw.err
	})
}
