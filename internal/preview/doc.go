// Package preview serves a built site locally.
//
// The server is a thin static file server with quality-of-life additions for
// checking a production build before deploying it:
//
//   - live reload: a polling file watcher broadcasts reload messages over a
//     websocket endpoint, and a small client script is injected into every
//     served HTML page
//   - request metrics exposed at /metrics in Prometheus format
//   - custom 404.html support
//
// It is a local convenience tool, not a production server.
package preview
