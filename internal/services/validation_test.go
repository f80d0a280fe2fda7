package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidationError_ListsFieldsInOrder(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"title": msgRequired, "author_id": msgRequired}}

	assert.Equal(t, "validation failed: author_id, title", err.Error())
}

func Test_FieldErrors_KeepsFirstMessage(t *testing.T) {
	f := fieldErrors{}
	f.required("name", "")
	f.check(false, "name", "other")

	assert.Equal(t, msgRequired, f["name"])
}

func Test_ChangeLog_NilIsSafe(t *testing.T) {
	var c *ChangeLog

	assert.NotPanics(t, func() {
		c.Record(context.Background(), "authors", "create", 1, "Added author", nil)
	})
}
