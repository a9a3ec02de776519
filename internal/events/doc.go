// Package events provides in-process event types and dispatch for fired
// task reminders. The reminder evaluator publishes events here so that
// consumers (logging, future push channels) stay decoupled from the
// evaluation loop.
package events
