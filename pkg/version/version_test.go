package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/speckJ8/graph-algorithms/pkg/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rbt dev (commit unknown, built unknown)", version.String())
}
