// Package detid derives deterministic, content-addressed identifiers for
// database entities. An entity's identifier is a function of its namespace
// tag and its unique columns only, so repeated creation attempts for the same
// natural key converge on the same primary key and insert-or-ignore writes
// make creation idempotent.
package detid

import (
	"encoding/base32"
	"encoding/binary"

	"lukechampine.com/blake3"
)

// hashContext domain-separates deterministic ids from any other BLAKE3 use
// in the application.
const hashContext = "sealvault.db.deterministic-id.v1"

// EntityName is the closed set of namespace tags for entities with
// deterministic ids. Two entity kinds never share a tag, so byte-identical
// natural keys in different kinds cannot collide in identifier space.
// Adding an entity kind means adding a constant here.
type EntityName string

const (
	EntityProfile           EntityName = "profile"
	EntityProfilePicture    EntityName = "profile-picture"
	EntityAccountPicture    EntityName = "account-picture"
	EntityAddress           EntityName = "address"
	EntityChain             EntityName = "chain"
	EntityDapp              EntityName = "dapp"
	EntityDataEncryptionKey EntityName = "data-encryption-key"
	EntityDataMigration     EntityName = "data-migration"
)

func (e EntityName) String() string {
	return string(e)
}

// DeterministicId is the fixed-form identifier: unpadded uppercase base32 of
// a 32-byte BLAKE3 digest. Owned by the entity row it identifies; other rows
// reference it by foreign key.
type DeterministicId string

func (id DeterministicId) String() string {
	return string(id)
}

var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Derive computes the deterministic id for an entity from its namespace tag
// and ordered unique columns. The column order is part of the hash input and
// must be the same fixed order for every derivation of a given entity kind.
//
// Each input is framed with a 64-bit big-endian length prefix, so shifting
// bytes between adjacent columns always changes the digest. Derivation is
// pure and total: it depends only on the input bytes, never on addresses,
// map iteration order or random state.
func Derive(entity EntityName, uniqueColumns ...[]byte) DeterministicId {
	h := blake3.New(32, nil)

	writeFramed(h, []byte(hashContext))
	writeFramed(h, []byte(entity))
	for _, col := range uniqueColumns {
		writeFramed(h, col)
	}

	digest := h.Sum(nil)
	return DeterministicId(idEncoding.EncodeToString(digest))
}

// DeriveFromStrings is Derive for callers whose unique columns are strings.
func DeriveFromStrings(entity EntityName, uniqueColumns ...string) DeterministicId {
	cols := make([][]byte, len(uniqueColumns))
	for i, col := range uniqueColumns {
		cols[i] = []byte(col)
	}
	return Derive(entity, cols...)
}

// ContentHash returns the BLAKE3 digest of a blob, used as the natural key of
// content-addressed binary entities such as profile pictures.
func ContentHash(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

func writeFramed(h interface{ Write(p []byte) (int, error) }, data []byte) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	// Hasher writes never fail.
	_, _ = h.Write(length[:])
	_, _ = h.Write(data)
}
