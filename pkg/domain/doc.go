/*
Package domain contains the core models of the SFS web client.

It describes what a user-triggered submission looks like, how its result is
classified, and which status indicators it is allowed to change. The package is
kept free of I/O: encoding, transport and rendering live in other packages.

# Key Entities

  - Request: a one-shot description of a single network call and its UI consequences.
  - Payload: the body of a Request (raw string, form fields, file blobs or JSON).
  - SuccessTransition / FailureTransition: what the UI does once the call settles.
  - Outcome: the classified result (Success, TransportError, ServerError, Suppressed).
  - Effect: the single status write produced by an Outcome.
  - Board: the snapshot of every user-visible status indicator.
*/
package domain
