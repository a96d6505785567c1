/*
 * TempoGo - chess engine core in GO
 *
 * MIT License
 *
 * Copyright (c) 2024-2026 Thomas Mertens
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package search

import (
	"github.com/c2h5oh/datasize"

	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

// SeeCacheEntry is one direct mapped slot of the SEE cache
type SeeCacheEntry struct {
	key      position.Key
	to       Square
	attacked Piece
	value    Value
}

// SeeCache is a per worker direct mapped cache of static exchange
// evaluation results keyed by a derived key of position, move and
// attacked piece. Stale entries are simply overwritten - two
// distinct tuples hashing to the same slot evict each other. A
// probe miss is treated by callers exactly like computing SEE
// afresh, so the cache is a pure accelerator.
type SeeCache struct {
	entries []SeeCacheEntry
	mask    uint64
}

// NewSeeCache creates a SEE cache with as many power-of-two slots
// as fit into the given byte size. Returns nil for sizes too small
// to hold a single slot - a nil cache is valid and always misses.
func NewSeeCache(size datasize.ByteSize) *SeeCache {
	const entrySize = 16 // bytes per slot
	slots := uint64(size) / entrySize
	if slots == 0 {
		return nil
	}
	// round down to a power of two for mask indexing
	pow2 := uint64(1)
	for pow2<<1 <= slots {
		pow2 <<= 1
	}
	return &SeeCache{
		entries: make([]SeeCacheEntry, pow2),
		mask:    pow2 - 1,
	}
}

// Len returns the number of slots of the cache
func (c *SeeCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Probe looks up the SEE value for the move on the position. The
// entry only matches when key, destination and attacked piece all
// agree - the cache never returns a stale value.
func (c *SeeCache) Probe(p *position.Position, move Move, attacked Piece) (Value, bool) {
	if c == nil {
		return ValueNA, false
	}
	key := p.SeeKey(move, attacked)
	e := &c.entries[uint64(key)&c.mask]
	if e.key == key && e.to == move.To() && e.attacked == attacked {
		return e.value, true
	}
	return ValueNA, false
}

// Save stores the SEE value for the move on the position,
// unconditionally overwriting the slot
func (c *SeeCache) Save(p *position.Position, move Move, attacked Piece, value Value) {
	if c == nil {
		return
	}
	key := p.SeeKey(move, attacked)
	e := &c.entries[uint64(key)&c.mask]
	e.key = key
	e.to = move.To()
	e.attacked = attacked
	e.value = value
}

// See returns the static exchange evaluation of the move, served
// from the cache when possible
func (c *SeeCache) See(p *position.Position, move Move) Value {
	attacked := p.GetPiece(move.To())
	if v, ok := c.Probe(p, move, attacked); ok {
		return v
	}
	v := p.See(move)
	c.Save(p, move, attacked, v)
	return v
}
