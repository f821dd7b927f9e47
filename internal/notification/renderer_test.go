package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_SubstitutesPlaceholders(t *testing.T) {
	rendered, err := renderTemplate(
		"Dear {name}, request #{requestId} ({requestType}) at {organizationName}.",
		map[string]string{
			"name":             "Asha Rao",
			"requestId":        "42",
			"requestType":      "Access",
			"organizationName": "Acme Ltd",
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "Dear Asha Rao, request #42 (Access) at Acme Ltd.", rendered)
}

func TestRenderTemplate_RepeatedPlaceholder(t *testing.T) {
	rendered, err := renderTemplate("{name} and {name}", map[string]string{"name": "A"})
	require.NoError(t, err)
	assert.Equal(t, "A and A", rendered)
}

func TestRenderTemplate_MissingPlaceholderFails(t *testing.T) {
	_, err := renderTemplate("Dear {name}, see {closureComment}.", map[string]string{"name": "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closureComment")
}

func TestRenderTemplate_NoPlaceholders(t *testing.T) {
	rendered, err := renderTemplate("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", rendered)
}
