package server

import "errors"

var errHTTPServerNotConfigured = errors.New("http server is not configured")
