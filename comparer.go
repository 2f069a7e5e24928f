package vogen

import (
	"bytes"
	"cmp"
	"hash/maphash"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Comparer defines equality, hashing and ordering of keys and members.
//
// Canonical returns a comparable value such that Equal(a, b) holds exactly
// when Canonical(a) == Canonical(b). Item stores and hash functions are built
// on it.
type Comparer[K any] interface {
	Canonical(k K) any
	Equal(a, b K) bool
	Compare(a, b K) int
}

// Builtin comparers.
var (
	// Ordinal compares strings byte-wise.
	Ordinal Comparer[string] = ordinal{}
	// OrdinalIgnoreCase compares strings under Unicode case folding.
	OrdinalIgnoreCase Comparer[string] = ordinalIgnoreCase{}
	// TimeComparer compares instants regardless of location.
	TimeComparer Comparer[time.Time] = timeComparer{}
	// UUIDComparer compares UUIDs byte-wise.
	UUIDComparer Comparer[uuid.UUID] = uuidComparer{}
	// BytesComparer compares byte slices.
	BytesComparer Comparer[[]byte] = bytesComparer{}
)

type ordinal struct{}

func (ordinal) Canonical(k string) any  { return k }
func (ordinal) Equal(a, b string) bool  { return a == b }
func (ordinal) Compare(a, b string) int { return strings.Compare(a, b) }

type ordinalIgnoreCase struct{}

// cases.Caser is stateful; a fresh one is used per call.
func (ordinalIgnoreCase) fold(s string) string { return cases.Fold().String(s) }

func (c ordinalIgnoreCase) Canonical(k string) any { return c.fold(k) }
func (c ordinalIgnoreCase) Equal(a, b string) bool { return a == b || c.fold(a) == c.fold(b) }
func (c ordinalIgnoreCase) Compare(a, b string) int {
	return strings.Compare(c.fold(a), c.fold(b))
}

type timeComparer struct{}

// Canonical returns seconds and nanoseconds, valid over the whole range of
// time.Time.
func (timeComparer) Canonical(k time.Time) any  { return [2]int64{k.Unix(), int64(k.Nanosecond())} }
func (timeComparer) Equal(a, b time.Time) bool  { return a.Equal(b) }
func (timeComparer) Compare(a, b time.Time) int { return a.Compare(b) }

type uuidComparer struct{}

func (uuidComparer) Canonical(k uuid.UUID) any  { return k }
func (uuidComparer) Equal(a, b uuid.UUID) bool  { return a == b }
func (uuidComparer) Compare(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) }

type bytesComparer struct{}

func (bytesComparer) Canonical(k []byte) any  { return string(k) }
func (bytesComparer) Equal(a, b []byte) bool  { return bytes.Equal(a, b) }
func (bytesComparer) Compare(a, b []byte) int { return bytes.Compare(a, b) }

// DefaultComparer returns the natural comparer of an ordered type.
func DefaultComparer[K cmp.Ordered]() Comparer[K] {
	return orderedComparer[K]{}
}

type orderedComparer[K cmp.Ordered] struct{}

func (orderedComparer[K]) Canonical(k K) any  { return k }
func (orderedComparer[K]) Equal(a, b K) bool  { return a == b }
func (orderedComparer[K]) Compare(a, b K) int { return cmp.Compare(a, b) }

// EqualityComparer returns a comparer based on the == operator. It defines no
// order, and Compare panics for unequal values.
func EqualityComparer[K comparable]() Comparer[K] {
	return equalityComparer[K]{}
}

type equalityComparer[K comparable] struct{}

func (equalityComparer[K]) Canonical(k K) any { return k }
func (equalityComparer[K]) Equal(a, b K) bool { return a == b }
func (equalityComparer[K]) Compare(a, b K) int {
	if a == b {
		return 0
	}
	panic("vogen: ordering is not defined for equality comparer")
}

// CmpComparer returns a comparer for types with a Cmp method and a canonical
// string form, such as decimal.Decimal.
func CmpComparer[K interface {
	Cmp(K) int
	String() string
}]() Comparer[K] {
	return cmpComparer[K]{}
}

type cmpComparer[K interface {
	Cmp(K) int
	String() string
}] struct{}

func (cmpComparer[K]) Canonical(k K) any  { return k.String() }
func (cmpComparer[K]) Equal(a, b K) bool  { return a.Cmp(b) == 0 }
func (cmpComparer[K]) Compare(a, b K) int { return a.Cmp(b) }

var seed = maphash.MakeSeed()

// Hash returns the hash of a comparable value. Hashes are stable within a
// process only. Values are hashed through their interface form, so Hash(v)
// and Hash(any(v)) agree.
func Hash[T comparable](v T) uint64 {
	return maphash.Comparable[any](seed, v)
}

// HashKey returns the hash of k under c.
func HashKey[K any](c Comparer[K], k K) uint64 {
	return Hash(c.Canonical(k))
}

// CombineHash combines hashes in order.
func CombineHash(hs ...uint64) uint64 {
	h := uint64(14695981039346656037)
	for _, v := range hs {
		h ^= v
		h *= 1099511628211
	}
	return h
}

// EqualPtr compares two optional values under c. Two nil pointers are equal.
func EqualPtr[K any](c Comparer[K], a, b *K) bool {
	if a == nil || b == nil {
		return a == b
	}
	return c.Equal(*a, *b)
}

// HashPtr returns the hash of an optional value under c.
func HashPtr[K any](c Comparer[K], p *K) uint64 {
	if p == nil {
		return 0
	}
	return HashKey(c, *p)
}

// ComparePtr orders two optional values under c. nil sorts first.
func ComparePtr[K any](c Comparer[K], a, b *K) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return c.Compare(*a, *b)
	}
}

// EqualRef compares two optional values of a generated type.
// Two nil pointers are equal.
func EqualRef[T interface{ Equal(T) bool }](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return (*a).Equal(*b)
}

// HashRef returns the hash of an optional value of a generated type.
func HashRef[T interface{ HashCode() uint64 }](p *T) uint64 {
	if p == nil {
		return 0
	}
	return (*p).HashCode()
}

// CompareRef orders two optional values of a generated type. nil sorts first.
func CompareRef[T interface{ Compare(T) int }](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return (*a).Compare(*b)
	}
}
