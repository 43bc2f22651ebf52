package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/zappi/internal/runner/mocks"
)

// expectLister registers one package-manager listing call on m.
func expectLister(m *mocks.MockRunner, pl PackageLister, out string, err error) *mocks.MockRunner_Run_Call {
	args := make([]interface{}, len(pl.Args))
	for i, a := range pl.Args {
		args[i] = a
	}
	var data []byte
	if out != "" {
		data = []byte(out)
	}
	return m.EXPECT().Run(mock.Anything, pl.Name, args...).Return(data, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}
