package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid object path")

// Local stores objects as plain files under root/<bucket>/<path> and derives
// public URLs under urlPrefix, which the HTTP layer serves as static files.
type Local struct {
	root      string
	urlPrefix string
}

func NewLocal(root, urlPrefix string) *Local {
	return &Local{
		root:      root,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

func (l *Local) Put(bucket, objectPath string, r io.Reader) (string, error) {
	full, err := l.resolve(bucket, objectPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// Leave no partial object behind.
		os.Remove(full)
		return "", err
	}

	return objectPath, nil
}

func (l *Local) Delete(bucket, objectPath string) error {
	full, err := l.resolve(bucket, objectPath)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (l *Local) Exists(bucket, objectPath string) bool {
	full, err := l.resolve(bucket, objectPath)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && !info.IsDir()
}

func (l *Local) PublicURL(bucket, objectPath string) string {
	return l.urlPrefix + "/" + bucket + "/" + objectPath
}

// resolve joins and verifies the final path still lives under root/bucket,
// so "../" segments in object paths cannot escape the tree.
func (l *Local) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || objectPath == "" {
		return "", ErrInvalidPath
	}

	base := filepath.Join(l.root, bucket)
	full := filepath.Join(base, filepath.FromSlash(objectPath))
	if !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
