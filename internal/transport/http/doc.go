// Package http exposes the computed statistics reports over a small JSON
// API for the plotting front-end: full per-partition tables, individual
// key-aligned series, health and Prometheus metrics endpoints.
package http
