package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"barterhub/internal/adapter/api"
)

func TestProductRequestsAllowFreeListings(t *testing.T) {
	v := api.NewValidator()

	create := createProductRequest{
		Title:     "Giveaway box",
		Price:     0,
		Category:  "books",
		Condition: "good",
	}
	assert.NoError(t, v.Validate(&create))

	create.Price = -1
	assert.Error(t, v.Validate(&create))

	zero := 0.0
	update := updateProductRequest{Price: &zero}
	assert.NoError(t, v.Validate(&update))

	negative := -1.0
	update.Price = &negative
	assert.Error(t, v.Validate(&update))
}
