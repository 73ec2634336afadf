// Package internal contains the implementation packages for prestigia-contact.
//
// # Package Organization
//
//   - contact: the submission controller, its payload and status messages
//   - quickcontact: email, WhatsApp and map dispatchers and their platforms
//   - view: templ components for the contact section and the page around it
//   - server: preview server routing form posts to the controller
//   - events: WebSocket hub streaming controller state changes
//   - metrics: Prometheus instruments for submissions and dispatches
//   - config: Viper configuration with file watching
//   - errors: structured error type shared by every package
//   - logging: slog-backed structured logger
//   - validation: URL checks before anything is handed to the OS
//   - version: build identity
//
// # Inter-Package Communication
//
// The controller knows nothing about HTTP serving or rendering. It reads an
// input Surface, reports to Observers (the events hub) and a Recorder
// (metrics), and exposes its state and status for the view to render. The
// server owns one controller and wires the rest around it.
//
// # Testing Strategy
//
//   - Unit tests with testify next to each package
//   - httptest backends for every submission outcome
//   - Property tests with gopter behind the "property" build tag
//
// For details, see the individual package documentation.
package internal
