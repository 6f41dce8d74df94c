// Package syncer pulls the full record list from the resolvex API and
// publishes it into the state store.
//
// A Synchronizer runs one cycle per Refresh call. Every cycle gets a
// monotonically increasing number; the store drops the result of a cycle that
// finishes after a newer one has already been published. Refresh calls are
// never serialized, so a mutation-triggered sync and a timer tick may overlap.
//
// Failures do not touch the published snapshot. They are recorded on the store
// and pushed as failure alerts. A response that carries no "list" key is
// logged and ignored.
//
// StartPoller drives a Refresher on a fixed interval using a
// k8s.io/utils/clock ticker so tests can step time with a fake clock.
package syncer
