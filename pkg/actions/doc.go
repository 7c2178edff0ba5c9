// Package actions is the catalog of backend calls a user can trigger.
//
// Every constructor validates its input first and returns a *domain.ValidationError
// carrying the user-facing message when something required is missing. In that
// case no domain.Request is built, so no network call can happen.
package actions
