// Package transport instruments outgoing HTTP calls.
//
// Every component that talks to the resolvex API does so through a Doer.
// The application hands them a single *Instrumented value wrapping the real
// *http.Client, so one decorator observes calls made by the synchronizer,
// the mutation service and the CLI alike.
//
// # Signals
//
// For each call Instrumented emits:
//
//	CallStarted(call)        before the request is handed to the wrapped Doer
//	CallEnded(call, err)     once Do returns, exactly once, even on panic
//
// End is tied to Do returning rather than to the body being closed, so calls
// whose responses are discarded by the caller still balance.
//
// The layer is outcome-agnostic: it carries no retry, timeout or status
// interpretation. Those belong to the resolvex client.
package transport
