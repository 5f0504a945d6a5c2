package registry

import "fmt"

// NotFoundError is returned by Get when a slug has no registered
// descriptor. It is the only error kind the registry itself produces at
// request time; everything else propagates from action handlers unmodified.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %q is not registered", e.Slug)
}
