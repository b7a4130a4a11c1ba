// Package dev implements the development proxy that fronts the Django
// runserver process.
//
// The proxy owns the public port. It forwards application traffic to Django
// on an adjacent port, injects a hot reload WebSocket client into HTML
// responses, watches the project tree for changes, and serves Prometheus
// metrics about itself under /_djboot/metrics.
package dev
