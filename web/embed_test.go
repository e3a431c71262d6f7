package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_Stylesheet(t *testing.T) {
	data, err := fs.ReadFile(FS, "static/askby.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), "#example-list")
}
