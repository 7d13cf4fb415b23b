package gen

import (
	"crypto/md5"
	"io"

	"github.com/google/uuid"
)

// Identify derives the type identifier of a table: the MD5 digest of the
// namespace segments each followed by "::", the table name and the
// fingerprints of all members in declaration order. Reordering members,
// changing a member type or array count, or renaming the table or its
// namespace changes the identifier.
func Identify(ns []string, name string, members []*Member) uuid.UUID {
	h := md5.New()
	for _, seg := range ns {
		io.WriteString(h, seg+"::")
	}
	io.WriteString(h, name)
	for _, m := range members {
		io.WriteString(h, m.Fingerprint())
	}
	id, _ := uuid.FromBytes(h.Sum(nil))
	return id
}
