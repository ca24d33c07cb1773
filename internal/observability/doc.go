// Package observability provides event logging, metrics calculation, and
// alerting for Wellness Brain. It uses structured JSON Lines (JSONL) for
// event persistence and derives decision metrics on-demand from the event
// log.
package observability
