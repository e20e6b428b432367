// ABOUTME: Kaomoji record: glyph code, keyword set and content-hash identity
// ABOUTME: Parses and serializes the tab-separated database line format
package db

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// refNamespace scopes the name-based UUIDs returned by Record.Ref.
var refNamespace = uuid.MustParse("5d1e0c6a-8f43-4f55-9a7e-6b0a3c7f2e91")

// Identity is the SHA-256 digest of a record's UTF-8 code.
type Identity [sha256.Size]byte

// IdentityOf returns the identity for code.
func IdentityOf(code string) Identity {
	return Identity(sha256.Sum256([]byte(code)))
}

// BigInt returns the digest read as an unsigned big-endian integer.
func (id Identity) BigInt() *big.Int {
	return new(big.Int).SetBytes(id[:])
}

// String renders the identity in base 10.
func (id Identity) String() string {
	return id.BigInt().String()
}

// Hex renders the identity as the hex digest.
func (id Identity) Hex() string {
	return hex.EncodeToString(id[:])
}

// ParseIdentity parses a base-10 identity, or base-16 when prefixed with 0x.
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok || n.Sign() < 0 || n.BitLen() > len(id)*8 {
		return id, fmt.Errorf("%w: bad identity %q", ErrInvalidArgument, s)
	}
	n.FillBytes(id[:])
	return id, nil
}

// Record is a single kaomoji entry. The code and identity never change after
// construction; the keyword set keeps insertion order.
type Record struct {
	code     string
	identity Identity
	keywords []string
}

// NewRecord builds a record from a code and a keyword list. Keywords are
// trimmed, deduplicated and empty ones dropped; a keyword that cannot be
// stored on one database line is rejected.
func NewRecord(code string, keywords []string) (*Record, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidArgument)
	}
	if strings.ContainsAny(code, "\t\r\n") {
		return nil, fmt.Errorf("%w: code %q contains a tab or newline", ErrInvalidArgument, code)
	}
	r := &Record{
		code:     code,
		identity: IdentityOf(code),
	}
	if err := r.AddKeywords(keywords...); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckKeyword rejects keywords that would not survive a write and reload:
// the line format separates keywords with commas and records with newlines.
func CheckKeyword(keyword string) error {
	if strings.ContainsAny(strings.TrimSpace(keyword), ",\r\n") {
		return fmt.Errorf("%w: keyword %q contains a comma or line break", ErrInvalidArgument, keyword)
	}
	return nil
}

// ParseKeywords splits a comma-separated keyword list, trimming each entry and
// dropping empty ones.
func ParseKeywords(csv string) []string {
	var out []string
	for _, kw := range strings.Split(csv, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// ParseLine parses one database line. Everything up to the first tab is the
// code; the rest is a comma-separated keyword list. A line without a tab is a
// code with no keywords.
func ParseLine(line string) (*Record, error) {
	line = strings.TrimRight(line, "\r\n")
	code, rest, _ := strings.Cut(line, "\t")
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: empty code in %q", ErrMalformedEntry, line)
	}
	keywords := dedupe(ParseKeywords(rest))
	for _, kw := range keywords {
		if CheckKeyword(kw) != nil {
			return nil, fmt.Errorf("%w: line break in keyword %q", ErrMalformedEntry, kw)
		}
	}
	return &Record{
		code:     code,
		identity: IdentityOf(code),
		keywords: keywords,
	}, nil
}

func dedupe(keywords []string) []string {
	out := keywords[:0]
	for _, kw := range keywords {
		if !slices.Contains(out, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// Code returns the glyph text.
func (r *Record) Code() string { return r.code }

// Identity returns the content hash of the code.
func (r *Record) Identity() Identity { return r.identity }

// Ref returns a stable name-based UUID for the code, for external references.
func (r *Record) Ref() uuid.UUID {
	return uuid.NewSHA1(refNamespace, []byte(r.code))
}

// Keywords returns a copy of the keyword set in iteration order.
func (r *Record) Keywords() []string {
	return slices.Clone(r.keywords)
}

// HasKeyword reports whether the trimmed keyword is in the set.
func (r *Record) HasKeyword(keyword string) bool {
	return slices.Contains(r.keywords, strings.TrimSpace(keyword))
}

// AddKeyword inserts the trimmed keyword unless it is empty or present.
func (r *Record) AddKeyword(keyword string) error {
	return r.AddKeywords(keyword)
}

// AddKeywords unions keywords into the set. Nothing is added when any
// keyword fails CheckKeyword.
func (r *Record) AddKeywords(keywords ...string) error {
	for _, kw := range keywords {
		if err := CheckKeyword(kw); err != nil {
			return err
		}
	}
	r.union(keywords)
	return nil
}

func (r *Record) union(keywords []string) {
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || slices.Contains(r.keywords, kw) {
			continue
		}
		r.keywords = append(r.keywords, kw)
	}
}

// RemoveKeyword removes the trimmed keyword if present.
func (r *Record) RemoveKeyword(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if i := slices.Index(r.keywords, keyword); i >= 0 {
		r.keywords = slices.Delete(r.keywords, i, i+1)
	}
}

// RemoveKeywords removes each keyword present; absent ones are skipped.
func (r *Record) RemoveKeywords(keywords ...string) {
	for _, kw := range keywords {
		r.RemoveKeyword(kw)
	}
}

// Serialize returns the on-disk line, including the trailing newline.
func (r *Record) Serialize() string {
	return r.code + "\t" + strings.Join(r.keywords, ", ") + "\n"
}

// Equal compares identities only; keyword sets are ignored.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.identity == other.identity
}

// Clone returns an independent copy.
func (r *Record) Clone() *Record {
	return &Record{
		code:     r.code,
		identity: r.identity,
		keywords: slices.Clone(r.keywords),
	}
}

// String returns the code.
func (r *Record) String() string { return r.code }
