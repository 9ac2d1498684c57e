package render

import "github.com/pkg/errors"

var errNotOpen = errors.New("render: window not open")
