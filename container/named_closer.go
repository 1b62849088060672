package container

import (
	"io"
)

// namedCloser tags a connection closer with the config key it was opened
// under, so close logs can tell connections apart.
type namedCloser struct {
	name   string
	closer io.Closer
}

func (n namedCloser) Close() error {
	if n.closer == nil {
		return nil
	}

	return n.closer.Close()
}

func (n namedCloser) Name() string {
	return n.name
}
