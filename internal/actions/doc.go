// Package actions implements the operator's mutations: create, rename and
// delete a tracked domain.
//
// Each mutation is a single API call. Its outcome is surfaced as an alert and
// a successful call is followed by a sync so the table reflects the change.
// Concurrent mutations are independent; none of them waits for another.
package actions
