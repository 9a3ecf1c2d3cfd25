// Package middleware provides the HTTP middleware chain for the clip service.
//
// It includes:
//   - API header enforcement for the gateway-fronted endpoints
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics, with time-to-first-byte timing for
//     the streaming download path
//   - Response compression (gzip) for the JSON surfaces
package middleware
