// Package server implements the HTTP surface using Echo.
//
// Routes: account timeline report (/:name), follow-list report (/following/:name),
// health (/healthz) and Prometheus metrics (/metrics).
package server
