// Package validation implements per-route request checks for fiber handlers.
//
// A route declares an ordered list of Rules. Validate runs every rule, records
// each failure in the request's error collection and always continues, so
// several failures on one request accumulate. A gate placed after the rules
// (see middleware.HandleInputErrors) decides whether the handler runs.
//
// Values are checked in their textual form: a missing or null field is the
// empty string, numbers keep the digits the client sent and booleans become
// "true" or "false".
package validation
