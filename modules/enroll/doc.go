// Package enroll handles the public site's enrollment requests and
// contact form, both of which land in the admin's inbox.
package enroll
