// Package whatsapp implements the messaging leg of credential delivery using
// the Meta WhatsApp Cloud API. Only pre-approved template messages are
// supported; free-form text requires an open conversation window and is not
// something this backend initiates.
package whatsapp
