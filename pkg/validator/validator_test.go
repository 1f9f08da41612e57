package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Limit int    `validate:"lte=100"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	require.NoError(t, v.ValidateStruct(sample{Name: "a", Limit: 10}))

	err := v.ValidateStruct(sample{Limit: 500})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		"sample.Name failed on required",
		"sample.Limit failed on lte=100",
	}, Messages(err))
}

func TestMessagesPassesThroughOtherErrors(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"boom"}, Messages(errors.New("boom")))
}
