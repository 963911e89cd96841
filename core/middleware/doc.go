// Package middleware groups the HTTP middleware of the server.
//
//   - auth: API key validation on the X-API-Key header. Disabled when no key is configured.
//   - rayid: tags every request with a ray id, stored in the fiber locals and echoed
//     in the X-Ray-ID response header for tracing. logger.WithRayID reads it.
package middleware
