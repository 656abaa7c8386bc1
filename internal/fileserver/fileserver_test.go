package fileserver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ferdiebergado/rcli/internal/fileserver"
)

const helloContent = "Hello, world!\n"

// newTree creates
//
//	root/
//	  hello.txt
//	  sub/
//	    hello world.txt
//	    nested/
//
// next to a file outside the root.
func newTree(t *testing.T) (root, outside string) {
	t.Helper()

	base := t.TempDir()
	root = filepath.Join(base, "root")
	outside = filepath.Join(base, "secret.txt")

	mustMkdir(t, filepath.Join(root, "sub", "nested"))
	mustWrite(t, filepath.Join(root, "hello.txt"), helloContent)
	mustWrite(t, filepath.Join(root, "sub", "hello world.txt"), "spaced")
	mustWrite(t, outside, "top secret")

	return root, outside
}

func openDir(t *testing.T, root string) *fileserver.Dir {
	t.Helper()

	dir, err := fileserver.Open(root)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := dir.Close(); err != nil {
			t.Errorf("close dir: %v", err)
		}
	})
	return dir
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
