package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]int{1, 2, 3}, 11, 2, 5)
	assert.Equal(t, []int{1, 2, 3}, resp.Data)
	assert.EqualValues(t, 11, resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
	assert.Equal(t, 5, resp.Meta.PageSize)
}

func TestNewPaginatedResponseExactFit(t *testing.T) {
	resp := NewPaginatedResponse([]string{}, 10, 1, 5)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestNewPaginatedResponseEmpty(t *testing.T) {
	resp := NewPaginatedResponse([]string{}, 0, 1, 10)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}
