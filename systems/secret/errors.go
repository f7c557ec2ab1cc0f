package secret

import "fmt"

// ErrSecretNotFound defines unknown secret error.
type ErrSecretNotFound struct {
	Name string
}

// Error formats output.
func (e *ErrSecretNotFound) Error() string {
	return fmt.Sprintf("secret %s is not found", e.Name)
}
