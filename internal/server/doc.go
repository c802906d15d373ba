// Package server implements the HTTP lobby: login, match hosting/joining,
// setup/attack actions, and a spectator WebSocket stream. It wraps
// internal/controller.AppController with an echo router, JWT auth
// middleware, and per-IP rate limiting.
package server
