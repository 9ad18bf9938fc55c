package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/tasknest/internal/source"
	"github.com/josephgoksu/tasknest/internal/storage"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
		message  string
	}{
		{
			name:     "storage creation",
			err:      fmt.Errorf("%w: insert task 1: %w", storage.ErrCreation, errors.New("disk I/O error")),
			category: CategoryStorage,
			message:  "Could not save the downloaded tasks.",
		},
		{
			name:     "storage fetch",
			err:      fmt.Errorf("%w: query tasks", storage.ErrFetch),
			category: CategoryStorage,
			message:  "Could not load tasks.",
		},
		{
			name:     "source response",
			err:      &source.Error{Kind: source.KindResponse, StatusCode: 500},
			category: CategoryNetwork,
			message:  source.KindResponse.Message(),
		},
		{
			name:     "wrapped source parsing",
			err:      fmt.Errorf("import: %w", &source.Error{Kind: source.KindParsing}),
			category: CategoryNetwork,
			message:  source.KindParsing.Message(),
		},
		{
			name:     "anything else",
			err:      errors.New("flag unreadable"),
			category: CategoryOther,
			message:  "flag unreadable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, Classified{}, Classify(nil))
}
