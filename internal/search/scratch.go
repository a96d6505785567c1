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
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

// Per worker scratch tables: small direct mapped caches keyed by
// the pawn structure key and the material key of a position. They
// belong to exactly one worker and need no locking.

const (
	pawnTableSize     = 1 << 12
	materialTableSize = 1 << 12
)

// PawnEntry caches per pawn structure data. Currently the passed
// pawn sets - the slot grows with the evaluation terms using it.
type PawnEntry struct {
	key    position.Key
	Passed [ColorLength]Bitboard
}

type pawnTable struct {
	entries [pawnTableSize]PawnEntry
}

// probe returns the entry for the position's pawn structure,
// computing it on a miss
func (t *pawnTable) probe(p *position.Position) *PawnEntry {
	key := p.PawnKey()
	e := &t.entries[uint64(key)&(pawnTableSize-1)]
	if e.key == key {
		return e
	}
	e.key = key
	for c := White; c <= Black; c++ {
		e.Passed[c] = passedPawns(p, Color(c))
	}
	return e
}

// passedPawns computes the pawns of the given color with no
// opponent pawn in front on the own or a neighbour file
func passedPawns(p *position.Position, us Color) Bitboard {
	opponentPawns := p.PiecesBb(us.Flip(), Pawn)
	// squares controlled or occupied by opponent pawns, filled
	// towards us
	front := ShiftBitboard(opponentPawns, us.Flip().MoveDirection()) |
		ShiftBitboard(opponentPawns, Direction(us.Flip().Direction())*North+West) |
		ShiftBitboard(opponentPawns, Direction(us.Flip().Direction())*North+East)
	for i := 0; i < 5; i++ {
		front |= ShiftBitboard(front, us.Flip().MoveDirection())
	}
	return p.PiecesBb(us, Pawn) &^ front
}

// EndgameKind classifies recognized material configurations
type EndgameKind uint8

// EndgameKind constants
const (
	EgNone EndgameKind = iota
	EgDraw             // dead draw by insufficient material
	EgKPK              // king and pawn vs king
)

// MaterialEntry caches per material configuration data
type MaterialEntry struct {
	key     position.Key
	NonPawn [ColorLength]Value
	Endgame EndgameKind
}

type materialTable struct {
	entries [materialTableSize]MaterialEntry
}

// probe returns the entry for the position's material
// configuration, computing it on a miss
func (t *materialTable) probe(p *position.Position) *MaterialEntry {
	key := p.MaterialKey()
	e := &t.entries[uint64(key)&(materialTableSize-1)]
	if e.key == key {
		return e
	}
	e.key = key
	e.NonPawn[White] = p.MaterialNonPawn(White)
	e.NonPawn[Black] = p.MaterialNonPawn(Black)
	e.Endgame = recognizeEndgame(p)
	return e
}

// recognizeEndgame detects the few material configurations the
// engine treats specially
func recognizeEndgame(p *position.Position) EndgameKind {
	whitePawns := p.PiecesBb(White, Pawn).PopCount()
	blackPawns := p.PiecesBb(Black, Pawn).PopCount()
	if whitePawns == 0 && blackPawns == 0 {
		// bare kings or a single minor piece cannot force a mate
		if p.MaterialNonPawn(White)+p.MaterialNonPawn(Black) <= Bishop.ValueOf() {
			return EgDraw
		}
		return EgNone
	}
	if p.MaterialNonPawn(White) == 0 && p.MaterialNonPawn(Black) == 0 &&
		whitePawns+blackPawns == 1 {
		return EgKPK
	}
	return EgNone
}
