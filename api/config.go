// Package api provides the HTTP API server for querying and managing the
// health metric corpus.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8082")
	ListenAddr string
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
