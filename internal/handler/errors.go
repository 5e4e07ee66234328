package handler

import "errors"

// errNoHTTPAddress stops startup when SERVER_ADDRESS resolves to nothing.
var errNoHTTPAddress = errors.New("no http address configured")
