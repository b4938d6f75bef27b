// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the content extractor and the
// conversation relay to the JSON endpoints the learning front end calls.
package api
