// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package widget

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 64-bit content fingerprint of a canonical config. It is
// used only for change detection, never for integrity.
type Hash uint64

func (h Hash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

// configDomainKey separates config fingerprints from any other BLAKE3
// use. Changing it changes every fingerprint, which only costs one
// redundant write and reload per group.
var configDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'w', 'i', 'd', 'g', 'e', 't', 's', '.',
	'c', 'o', 'n', 'f', 'i', 'g', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// ContentHash fingerprints canonical config text. The result is stable
// across processes and releases.
func ContentHash(canonical []byte) Hash {
	hasher, err := blake3.NewKeyed(configDomainKey[:])
	if err != nil {
		panic("widget: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(canonical)
	return Hash(binary.LittleEndian.Uint64(hasher.Sum(nil)[:8]))
}
