package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemovePrefix(t *testing.T) {
	assert.Equal(t, "801-422-1234", RemovePrefix("tel:801-422-1234", "tel:"))
	assert.Equal(t, "801-422-1234", RemovePrefix("801-422-1234", "tel:"))
	assert.Equal(t, "xtel:1", RemovePrefix("xtel:1", "tel:"))
}

func TestReplaceNBSP(t *testing.T) {
	assert.Equal(t, "John Smith Jr.", ReplaceNBSP("John\u00a0Smith\u00a0Jr."))
}
