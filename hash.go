package shell

/*
   Copyright 2018 Bruno Moura <brunotm@gmail.com>

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-wyhash"

	"github.com/brunotm/shell/types"
)

// wyhashSeed is fixed so that HashValue is deterministic across a process
// lifetime, which is all Dict bucketing and stage routing require.
const wyhashSeed = 0x5eed1e55

// HashValue computes a bucketing hash for a hashable Value, as required by
// the Dict key invariant (scalars, File, Glob pattern text, Field path).
// Text-shaped keys are hashed with xxhash; fixed-width scalar keys are hashed
// over their binary encoding with wyhash. Both feed callers (Dict, stage
// routing) a single uint64 regardless of the key's concrete Kind.
func HashValue(v Value) (uint64, error) {
	switch v.kind {
	case types.Text:
		return xxhash.Sum64String(v.s), nil
	case types.File, types.Glob:
		return xxhash.Sum64String(v.s), nil
	case types.Field:
		return xxhash.Sum64String(joinField(v.fieldPath())), nil
	case types.Integer:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.i))
		return wyhash.Hash(buf[:], wyhashSeed), nil
	case types.Float:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.f))
		return wyhash.Hash(buf[:], wyhashSeed), nil
	case types.Bool:
		if v.b {
			return wyhash.Hash([]byte{1}, wyhashSeed), nil
		}
		return wyhash.Hash([]byte{0}, wyhashSeed), nil
	case types.Time:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.t.UnixNano()))
		return wyhash.Hash(buf[:], wyhashSeed), nil
	case types.Duration:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.d))
		return wyhash.Hash(buf[:], wyhashSeed), nil
	default:
		return 0, typeMismatch("value of type %s is not hashable", v.Type().String())
	}
}

func joinField(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
