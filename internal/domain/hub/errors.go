package hub

import "errors"

var (
	ErrHubNotFound   = errors.New("hub not found")
	ErrHubCodeExists = errors.New("hub code already exists")
)
