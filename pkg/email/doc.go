// Package email defines the outbound email capability: a small EmailSender
// interface with a Postmark-backed implementation for production and a
// file-writing DevSender for local development.
//
// Credential, transaction-status, brochure-link, enrollment and contact-form
// mail all go through this package; callers build the HTML body and this
// package owns transport, sender identity, and reply-to behavior.
package email
