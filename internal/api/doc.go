// Package api serves the harmonizer over HTTP with echo.
//
// Routes:
//
//	GET  /api/health     liveness and build version
//	GET  /api/schema     the target schema
//	POST /api/harmonize  harmonize a CSV body or a multipart "file" upload
//
// /api/harmonize negotiates its response on the Accept header: text/csv
// returns the harmonized file, application/msgpack the report as
// MessagePack, anything else the report as JSON.
package api
