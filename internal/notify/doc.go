// Package notify implements the transient alert queue shown as toasts.
//
// Each pushed alert gets its own cancellable timer; expiry of one alert never
// touches another. Timers come from k8s.io/utils/clock so tests can step a
// fake clock through the expiry window instead of sleeping.
//
// Messages are stored raw. Normalize runs at display time and understands the
// resolvex error envelope:
//
//	{"code":"400","message":"Invalid domain","description":"..."}
//	→ [400] Invalid domain: ...
package notify
