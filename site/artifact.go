package site

import (
	"crypto/sha1"
	"encoding/hex"
)

// IndexFileName is the only file a generated site contains.
const IndexFileName = "index.html"

// Artifact is a rendered document ready for upload. Digest and Size always
// describe Content exactly.
type Artifact struct {
	Name    string
	Content []byte
	Digest  string
	Size    int
}

// NewArtifact computes the digest and size of content.
func NewArtifact(name string, content []byte) Artifact {
	return Artifact{
		Name:    name,
		Content: content,
		Digest:  Digest(content),
		Size:    len(content),
	}
}

// Digest returns the lowercase hex SHA-1 of b, the content address the
// hosting API expects in x-now-digest.
func Digest(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the digest and size still match the content.
func (a Artifact) Verify() bool {
	return a.Size == len(a.Content) && a.Digest == Digest(a.Content)
}
