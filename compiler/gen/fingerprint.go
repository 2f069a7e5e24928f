package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/vogen/compiler/load"
)

// formatVersion is part of every fingerprint. Bump it when the model or the
// generated code changes in a way old artifacts must not be reused for.
const formatVersion = 1

// Fingerprint is the SHA-256 fingerprint of a structural type definition.
type Fingerprint [32]byte

// String returns the hex encoding of the fingerprint.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero reports whether the fingerprint was never computed.
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// Combine mixes content with the fingerprints of its dependencies. The
// result depends on the order of deps.
func Combine(content Fingerprint, deps ...Fingerprint) Fingerprint {
	if len(deps) == 0 {
		return content
	}
	h := sha256.New()
	h.Write(content[:])
	for _, d := range deps {
		h.Write(d[:])
	}
	var f Fingerprint
	copy(f[:], h.Sum(nil))
	return f
}

// fingerprintInput is the structural definition of a candidate: everything
// its model is built from except source positions.
type fingerprintInput struct {
	Version   int
	Directive string
	PkgPath   string
	Decl      *load.Declaration
}

// DeclarationFingerprint returns the fingerprint of a declaration as built
// under the given configuration. Equal structure gives equal fingerprints
// regardless of where the declaration is located or how its options are
// ordered.
func DeclarationFingerprint(c *Config, d *load.Declaration) (Fingerprint, error) {
	in := fingerprintInput{
		Version:   formatVersion,
		Directive: c.directive(),
		PkgPath:   d.PkgPath,
		Decl:      d,
	}
	if in.PkgPath == "" {
		in.PkgPath = c.Package
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(in); err != nil {
		return Fingerprint{}, err
	}
	return sha256.Sum256(buf.Bytes()), nil
}

// digest returns the fingerprint of raw bytes.
func digest(b []byte) Fingerprint {
	return sha256.Sum256(b)
}
