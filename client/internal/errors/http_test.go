package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   Category
	}{
		{TransportStatus, Recoverable},
		{400, Irrecoverable},
		{401, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
		{302, Recoverable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ForStatus(tc.status), "status %d", tc.status)
	}
}

func TestIsIrrecoverable(t *testing.T) {
	assert.True(t, IsIrrecoverable(403))
	assert.False(t, IsIrrecoverable(502))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Recoverable", Recoverable.String())
	assert.Equal(t, "Irrecoverable", Irrecoverable.String())
	assert.Equal(t, "Unknown(7)", Category(7).String())
}
