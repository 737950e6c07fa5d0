package convert

import "fmt"

// ResolutionError reports a cross-entity reference that could not be found
// among the currently loaded set. Kind names the entity that was looked up,
// Reference identifies what the lookup used (a mint or pool key, or an
// index).
type ResolutionError struct {
	Kind      string
	Reference string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s not found for reference %s", e.Kind, e.Reference)
}
