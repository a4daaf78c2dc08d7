// Package brochure serves the marketing brochure behind short-lived
// download links. Prospects receive a tokened URL by email; the token is
// valid for an hour and may be used repeatedly until it expires. Only the
// most recently uploaded brochure is ever served.
package brochure
