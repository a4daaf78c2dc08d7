// Package users manages chit-fund member accounts: creation, login with
// bcrypt-hashed passwords, password changes and the member dashboard.
//
// Members log in with a generated USR#### identifier rather than their
// email. The Store interface has a MongoDB implementation for production
// and an in-memory one for tests; both enforce unique email and login id
// with distinguishable conflict errors, which the credential issuing flow
// relies on to retry colliding generated identifiers.
package users
