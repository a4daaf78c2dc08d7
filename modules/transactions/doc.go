// Package transactions records members' chit payments and drives their
// lifecycle. A transaction starts Pending and moves exactly once into
// Completed, Failed or Cancelled; terminal states have no way out and a
// transition to the current status is an error. Status changes are
// serialized per transaction id, and members are notified by email on a
// best-effort basis after the change is persisted.
package transactions
