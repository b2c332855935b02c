// Package password hashes and verifies user passwords with argon2id. Digests
// are stored in PHC string format so the parameters travel with the hash.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithm = "argon2id"

var ErrMalformedHash = errors.New("malformed password hash")

type Params struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follows the argon2 RFC's second recommended option.
func DefaultParams() Params {
	return Params{
		MemoryKB:    64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (p Params) validate() error {
	switch {
	case p.MemoryKB < 8*1024:
		return errors.New("argon2 memory must be >= 8192 KB")
	case p.Time < 1:
		return errors.New("argon2 time must be >= 1")
	case p.Parallelism < 1:
		return errors.New("argon2 parallelism must be >= 1")
	case p.SaltLength < 16:
		return errors.New("argon2 salt length must be >= 16")
	case p.KeyLength < 16:
		return errors.New("argon2 key length must be >= 16")
	}
	return nil
}

type Argon2 struct {
	params Params
}

func NewArgon2(p Params) (*Argon2, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Argon2{params: p}, nil
}

// Hash returns a salted argon2id digest of plain.
func (a *Argon2) Hash(plain string) (string, error) {
	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, a.params.Time, a.params.MemoryKB, a.params.Parallelism, a.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm,
		argon2.Version,
		a.params.MemoryKB, a.params.Time, a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches encoded. A mismatch is (false, nil);
// an error means encoded could not be parsed.
func (a *Argon2) Verify(plain, encoded string) (bool, error) {
	d, err := decode(encoded)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(plain), d.salt, d.time, d.memory, d.parallelism, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(key, d.key) == 1, nil
}

type digest struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decode(encoded string) (*digest, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != algorithm {
		return nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var d digest
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.memory, &d.time, &d.parallelism); err != nil {
		return nil, fmt.Errorf("%w: params: %v", ErrMalformedHash, err)
	}
	if d.memory == 0 || d.time == 0 || d.parallelism == 0 {
		return nil, fmt.Errorf("%w: zero parameter", ErrMalformedHash)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(d.salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(d.key) == 0 {
		return nil, fmt.Errorf("%w: key", ErrMalformedHash)
	}
	return &d, nil
}
