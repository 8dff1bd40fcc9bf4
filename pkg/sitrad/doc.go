// Package sitrad is the client for the Sitrad refrigeration monitoring REST API.
//
// It exposes two calls:
//
//	GET /api/v1/instruments              -> Client.Instruments
//	GET /api/v1/instruments/{id}/values  -> Client.InstrumentValues
//
// Both answer with an envelope of the form {resultsQty, status, results}.
// Unknown fields are ignored; a missing results array or a record without its
// identifying fields is reported as ErrCodeMalformedResponse. Transport
// failures and non-2xx answers are reported as ErrCodeUnavailable. Callers are
// expected to treat both as "no data" rather than as faults.
//
// Credentials come from Config (environment, .env file or CLI flags) and are
// sent as HTTP Basic authentication. Certificate validation is on unless
// Config.InsecureSkipVerify is set; prefer Config.CAFile for self-signed
// upstreams.
package sitrad
