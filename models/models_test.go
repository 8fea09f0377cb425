package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentAccessors(t *testing.T) {
	doc := Document{IDField: "abc", OwnerField: "a@x.com", ProductName: "Bat"}

	assert.Equal(t, "abc", doc.ID())
	assert.Equal(t, "a@x.com", doc.Owner())

	t.Run("missing or non-string values read as empty", func(t *testing.T) {
		assert.Empty(t, Document{}.ID())
		assert.Empty(t, Document{OwnerField: 42}.Owner())
	})

	t.Run("without id leaves original intact", func(t *testing.T) {
		stripped := doc.WithoutID()
		assert.NotContains(t, stripped, IDField)
		assert.Equal(t, "abc", doc.ID())
		assert.Equal(t, "Bat", stripped[ProductName])
	})
}

func TestFilterProductUpdate(t *testing.T) {
	tests := []struct {
		name         string
		input        Document
		wantAccepted Document
		wantDropped  []string
	}{
		{
			name:         "all whitelisted",
			input:        Document{ProductPrice: 20.5, ProductRating: 4, ProductStockStatus: "in stock"},
			wantAccepted: Document{ProductPrice: 20.5, ProductRating: 4, ProductStockStatus: "in stock"},
		},
		{
			name:         "unknown fields dropped",
			input:        Document{ProductName: "Glove", "isAdmin": true, OwnerField: "b@x.com"},
			wantAccepted: Document{ProductName: "Glove"},
			wantDropped:  []string{"isAdmin", OwnerField},
		},
		{
			name:         "id is never accepted",
			input:        Document{IDField: "other", ProductPhoto: "https://img/1.png"},
			wantAccepted: Document{ProductPhoto: "https://img/1.png"},
			wantDropped:  []string{IDField},
		},
		{
			name:         "empty input",
			input:        Document{},
			wantAccepted: Document{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, dropped := FilterProductUpdate(tt.input)
			assert.Equal(t, tt.wantAccepted, accepted)
			assert.ElementsMatch(t, tt.wantDropped, dropped)
		})
	}
}
