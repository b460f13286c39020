package gpu

import "errors"

var (
	ErrCompile   = errors.New("shader compile failed")
	ErrLink      = errors.New("program link failed")
	ErrNoTexture = errors.New("driver returned no texture")
)
