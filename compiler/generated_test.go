package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGeneratedShop generates the shop example into a package below
// testdata and runs the tests of testdata/shop_test.go.txt against it.
func TestGeneratedShop(t *testing.T) {
	if testing.Short() {
		t.Skip("builds generated code")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not found")
	}
	require.NoError(t, os.MkdirAll("testdata", 0o755))
	dir, err := os.MkdirTemp("testdata", "shop-")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	copyFile(t, filepath.Join("..", "examples", "shop", "types", "shop.yaml"), filepath.Join(dir, "shop.yaml"))
	copyFile(t, filepath.Join("testdata", "shop_test.go.txt"), filepath.Join(dir, "shop_test.go"))

	res, err := Generate(context.Background(), []string{dir})
	require.NoError(t, err)
	require.NotEmpty(t, res.Artifacts)

	cmd := exec.Command(goBin, "test", "-count=1", "./"+filepath.ToSlash(dir))
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go test failed:\n%s", out)
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(to, data, 0o644))
}
