// Package contact implements the contact form submission cycle.
//
// A Controller reads the visitor's fields from a Surface, builds a
// SubmissionPayload whose message field is a composite summary of every
// field, posts it as JSON to the fixed EndpointPath and turns the outcome into
// a single visible Status:
//
//   - 2xx: success text, and the surface is reset;
//   - non-2xx: the backend's "error" text when the body is a JSON object
//     carrying one, otherwise a generic fallback;
//   - transport failure: a network error text distinct from the fallback.
//
// A body that cannot be read or decoded is treated as absent. The controller
// is Idle or Submitting; Submit refuses to start while Submitting and always
// returns to Idle before it exits.
package contact
