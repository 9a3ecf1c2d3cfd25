// Package thumbnail normalizes source thumbnails for delivery.
//
// Thumbnails fetched from origins arrive in whatever format the origin
// prefers, most commonly WebP. Normalize re-encodes them as JPEG and
// caps their width so archive payloads stay small and consumers never
// need a WebP decoder.
package thumbnail
