// Package ids mints tab identifiers.
//
// Generators are injected into the tab manager; the Ledger wrapper makes sure
// an id is never handed out twice within a session, even after the tab that
// carried it was deleted.
package ids

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new opaque identifier.
type Generator interface {
	NewID() (string, error)
}

// Func adapts a plain function to Generator.
type Func func() (string, error)

func (f Func) NewID() (string, error) { return f() }

// UUID mints random (v4) UUIDs.
type UUID struct{}

func (UUID) NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Short mints prefix-<suffix> ids where suffix is 8 chars of lowercase base32.
// 8 chars base32 ~= 40 bits of space.
type Short struct {
	Prefix string
}

func (s Short) NewID() (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	prefix := strings.TrimSpace(s.Prefix)
	if prefix == "" {
		return suffix, nil
	}
	return prefix + "-" + suffix, nil
}

// Sequence mints deterministic ids: prefix-1, prefix-2, ...
// Used for scripted runs and tests where stable output matters.
type Sequence struct {
	Prefix string

	mu   sync.Mutex
	next uint64
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() (string, error) {
	s.mu.Lock()
	s.next++
	n := s.next
	s.mu.Unlock()
	prefix := strings.TrimSpace(s.Prefix)
	if prefix == "" {
		prefix = "tab"
	}
	return prefix + "-" + strconv.FormatUint(n, 10), nil
}

// ErrExhausted is returned when the wrapped generator keeps producing ids that
// were already issued.
var ErrExhausted = errors.New("id generator exhausted")

const ledgerMaxAttempts = 16

// Ledger wraps a Generator and remembers every id it has issued or that was
// reserved, so ids are never reused for the lifetime of the ledger.
type Ledger struct {
	gen Generator

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewLedger(gen Generator) *Ledger {
	if gen == nil {
		gen = UUID{}
	}
	return &Ledger{gen: gen, seen: map[string]struct{}{}}
}

// Reserve marks ids as taken (e.g. ids of the initial collection).
func (l *Ledger) Reserve(ids ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			l.seen[id] = struct{}{}
		}
	}
}

// Issued reports whether id was ever handed out or reserved.
func (l *Ledger) Issued(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[id]
	return ok
}

func (l *Ledger) NewID() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := 0; i < ledgerMaxAttempts; i++ {
		id, err := l.gen.NewID()
		if err != nil {
			return "", err
		}
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := l.seen[id]; dup {
			continue
		}
		l.seen[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, ledgerMaxAttempts)
}

// FromScheme returns the generator for a configured id scheme (uuid|short|seq).
func FromScheme(scheme string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "uuid":
		return UUID{}, nil
	case "short":
		return Short{Prefix: "tab"}, nil
	case "seq", "sequence":
		return NewSequence("tab"), nil
	default:
		return nil, fmt.Errorf("unknown id scheme: %s", scheme)
	}
}
