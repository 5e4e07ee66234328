package app

import "errors"

var errActivityArchive = errors.New("error connecting activity archive")
