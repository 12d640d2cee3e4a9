package jobstatus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
)

func TestParse(t *testing.T) {
	for _, value := range []string{"draft", "published", "closed", "archived", "expired"} {
		s, err := jobstatus.Parse(value)
		require.NoError(t, err)
		assert.Equal(t, value, s.String())
	}

	_, err := jobstatus.Parse("live")
	assert.Error(t, err)
}

func TestParseCreate(t *testing.T) {
	for _, value := range []string{"draft", "published"} {
		_, err := jobstatus.ParseCreate(value)
		assert.NoError(t, err)
	}

	for _, value := range []string{"closed", "archived", "expired", "live"} {
		_, err := jobstatus.ParseCreate(value)
		assert.Error(t, err, value)
	}
}
