package walk

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b", "z.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))
	require.NoError(t, os.Symlink("b", filepath.Join(root, "c")))

	var buf bytes.Buffer
	res, err := List(context.Background(), root, NewFilterConfig(false, false, true), func(a, b string) int {
		return strings.Compare(a, b)
	}, &buf)
	require.NoError(t, err)
	assert.Equal(t, root+"/a.txt\n"+root+"/b/z.txt\n", buf.String())
	assert.Equal(t, int64(2), res.Emitted)
	assert.Equal(t, int64(5), res.Visited)
	assert.False(t, res.Partial())

	buf.Reset()
	_, err = List(context.Background(), root, NewFilterConfig(true, false, false), nil, &buf)
	require.NoError(t, err)
	assert.Equal(t, root+"/c\n", buf.String())
}

func TestListMissingRoot(t *testing.T) {
	var buf bytes.Buffer
	_, err := List(context.Background(), filepath.Join(t.TempDir(), "gone"), NewFilterConfig(false, false, false), nil, &buf)
	var se *StartPathError
	assert.ErrorAs(t, err, &se)
	assert.Zero(t, buf.Len())
}

func TestLocaleComparer(t *testing.T) {
	cmp, err := LocaleComparer("C")
	require.NoError(t, err)
	assert.Negative(t, cmp("B", "a"))

	cmp, err = LocaleComparer("en_US.UTF-8")
	require.NoError(t, err)
	assert.Negative(t, cmp("a", "B"))
}
