package storage

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

// Gateway is the object-storage boundary of the catalog. It carries no
// business logic: path construction, existence checks and URL derivation
// only. Paths are namespaced by owner id so collisions are impossible and
// bulk owner deletion stays tractable.
type Gateway interface {
	Put(bucket, objectPath string, r io.Reader) (string, error)
	Delete(bucket, objectPath string) error
	Exists(bucket, objectPath string) bool
	PublicURL(bucket, objectPath string) string
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ObjectPath builds "{ownerID}/{timestamp}_{sanitizedBase}.{ext}" for a new
// upload. The timestamp component makes repeated uploads of the same file
// name collision-resistant.
func ObjectPath(ownerID, originalName string) string {
	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	base := strings.TrimSuffix(originalName, path.Ext(originalName))
	base = unsafeChars.ReplaceAllString(base, "_")

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), base)
	if ext != "" {
		name = name + "." + ext
	}
	return ownerID + "/" + name
}
