package importer

import (
	"errors"

	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/storage"
)

// Categories shown as the title of an error message.
const (
	CategoryStorage = "Storage Error"
	CategoryNetwork = "Network Error"
	CategoryOther   = "Some Error"
)

// Classified is an error reduced to what the front end displays.
type Classified struct {
	Message  string
	Category string
}

// Classify maps err to a category and a human readable message.
func Classify(err error) Classified {
	if err == nil {
		return Classified{}
	}

	var se *source.Error
	if errors.As(err, &se) {
		return Classified{Message: se.Kind.Message(), Category: CategoryNetwork}
	}

	switch {
	case errors.Is(err, storage.ErrCreation):
		return Classified{Message: "Could not save the downloaded tasks.", Category: CategoryStorage}
	case errors.Is(err, storage.ErrFetch):
		return Classified{Message: "Could not load tasks.", Category: CategoryStorage}
	case errors.Is(err, storage.ErrNotFound):
		return Classified{Message: "The task no longer exists.", Category: CategoryStorage}
	case errors.Is(err, storage.ErrUpdate):
		return Classified{Message: "Could not update the task.", Category: CategoryStorage}
	case errors.Is(err, storage.ErrDelete):
		return Classified{Message: "Could not delete the task.", Category: CategoryStorage}
	}

	return Classified{Message: err.Error(), Category: CategoryOther}
}
