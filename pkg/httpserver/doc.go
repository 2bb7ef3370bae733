// Package httpserver runs the service's HTTP listener with sane timeouts and
// graceful shutdown. Run blocks until the context is cancelled, an interrupt
// signal arrives, or the listener fails; in the first two cases in-flight
// requests get ShutdownTimeout to finish.
package httpserver
