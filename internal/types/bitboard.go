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

package types

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/tmertens/TempoGo/internal/util"
)

// Bitboard is a set of squares with one bit per square (a1 = bit 0,
// h8 = bit 63)
type Bitboard uint64

// Bitboard constants
const (
	BbZero Bitboard = 0
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = 1

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank1_Bb Bitboard = 0xFF
	Rank2_Bb Bitboard = Rank1_Bb << (8 * 1)
	Rank3_Bb Bitboard = Rank1_Bb << (8 * 2)
	Rank4_Bb Bitboard = Rank1_Bb << (8 * 3)
	Rank5_Bb Bitboard = Rank1_Bb << (8 * 4)
	Rank6_Bb Bitboard = Rank1_Bb << (8 * 5)
	Rank7_Bb Bitboard = Rank1_Bb << (8 * 6)
	Rank8_Bb Bitboard = Rank1_Bb << (8 * 7)
)

// Bb returns the Bitboard of the square
func (sq Square) Bb() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the corresponding bit of the bitboard for the square
func (b *Bitboard) PushSquare(s Square) Bitboard {
	*b |= s.Bb()
	return *b
}

// PopSquare removes the corresponding bit of the bitboard for the square
func (b *Bitboard) PopSquare(s Square) Bitboard {
	*b &^= s.Bb()
	return *b
}

// Has tests if the square's bit is set
func (b Bitboard) Has(s Square) bool {
	return b&s.Bb() != 0
}

// ShiftBitboard shifts all bits of the bitboard in the given
// direction. Bits which would wrap around the board edge are
// dropped.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return (b &^ Rank8_Bb) << 8
	case East:
		return (b &^ FileH_Bb) << 1
	case South:
		return b >> 8
	case West:
		return (b &^ FileA_Bb) >> 1
	case Northeast:
		return (b &^ FileH_Bb) << 9
	case Southeast:
		return (b &^ FileH_Bb) >> 7
	case Southwest:
		return (b &^ FileA_Bb) >> 9
	case Northwest:
		return (b &^ FileA_Bb) << 7
	}
	panic(fmt.Sprintf("Invalid direction %d", d))
}

// Lsb returns the least significant bit of the bitboard as a
// square. Returns SqNone when the bitboard is empty.
func (b Bitboard) Lsb() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the most significant bit of the bitboard as a
// square. Returns SqNone when the bitboard is empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb returns the least significant bit of the bitboard as a
// square and removes it from the bitboard
func (b *Bitboard) PopLsb() Square {
	sq := b.Lsb()
	*b &= *b - 1
	return sq
}

// PopCount returns the number of set bits
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// String returns the bitboard as a 64-bit binary string
func (b Bitboard) String() string {
	return fmt.Sprintf("%-0.64b", b)
}

// StringBoard returns a visual board matrix of the bitboard
func (b Bitboard) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			if b.Has(SquareOf(f, Rank8-r)) {
				os.WriteString("X ")
			} else {
				os.WriteString("  ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// FileDistance returns the absolute distance in files
func FileDistance(f1 File, f2 File) int {
	return util.Abs(int(f2) - int(f1))
}

// RankDistance returns the absolute distance in ranks
func RankDistance(r1 Rank, r2 Rank) int {
	return util.Abs(int(r2) - int(r1))
}

// SquareDistance returns the king move distance between two squares
func SquareDistance(s1 Square, s2 Square) int {
	return squareDistance[s1][s2]
}

// GetAttacksBb returns the attacked squares of the piece type on
// the square given the board occupation. Sliding attacks use magic
// bitboard lookups. Must not be called for pawns - use
// GetPawnAttacks instead.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Pawn:
		panic("GetAttacksBb called with piece type Pawn is not supported")
	case Bishop:
		return bishopMagics[sq].Attacks[bishopMagics[sq].index(occupied)]
	case Rook:
		return rookMagics[sq].Attacks[rookMagics[sq].index(occupied)]
	case Queen:
		return bishopMagics[sq].Attacks[bishopMagics[sq].index(occupied)] |
			rookMagics[sq].Attacks[rookMagics[sq].index(occupied)]
	default:
		return pseudoAttacks[pt][sq]
	}
}

// GetPseudoAttacks returns a bitboard of possible attacks of a
// piece as if on an empty board
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// GetPawnAttacks returns a bitboard of possible attacks of a pawn
// of the given color on the given square
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// Intermediate returns the bitboard of the squares strictly between
// the two squares. Empty when the squares are not on a common rank,
// file or diagonal.
func Intermediate(sq1 Square, sq2 Square) Bitboard {
	return intermediate[sq1][sq2]
}

// Line returns the bitboard of the full line (rank, file or
// diagonal) through the two squares including both squares.
// Empty when the squares are not aligned.
func Line(sq1 Square, sq2 Square) Bitboard {
	return lineBb[sq1][sq2]
}

// Aligned returns true when all three squares are on a common
// rank, file or diagonal
func Aligned(sq1 Square, sq2 Square, sq3 Square) bool {
	return lineBb[sq1][sq2]&sq3.Bb() != 0
}

// GetCastlingRights returns the castling rights a move from or to
// the given square invalidates
func GetCastlingRights(sq Square) CastlingRights {
	return castlingRightsMask[sq]
}

// ////////////////////
// Private
// ////////////////////

var (
	// pre computed single square bitboards
	sqBb [SqLength]Bitboard

	// pre computed king move distances
	squareDistance [SqLength][SqLength]int

	// pre computed pawn attacks per color and square
	pawnAttacks [2][SqLength]Bitboard

	// pre computed attacks on an empty board per piece type and square
	pseudoAttacks [PtLength][SqLength]Bitboard

	// pre computed squares between two squares
	intermediate [SqLength][SqLength]Bitboard

	// pre computed full lines through two squares
	lineBb [SqLength][SqLength]Bitboard

	// castling rights invalidated by moves touching a square
	castlingRightsMask [SqLength]CastlingRights

	// magic bitboards - rook and bishop attacks
	rookTable    []Bitboard
	rookMagics   [SqLength]Magic
	bishopTable  []Bitboard
	bishopMagics [SqLength]Magic
)

// Pre computes various bitboards to avoid runtime calculation
func initBb() {
	squareBitboardsPreCompute()
	squareDistancePreCompute()
	initMagicBitboards()
	pseudoAttacksPreCompute()
	intermediatePreCompute()
	castlingMaskPreCompute()
}

func squareBitboardsPreCompute() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = BbOne << sq
	}
}

func squareDistancePreCompute() {
	for sq1 := SqA1; sq1 <= SqH8; sq1++ {
		for sq2 := SqA1; sq2 <= SqH8; sq2++ {
			if sq1 != sq2 {
				squareDistance[sq1][sq2] =
					util.Max(FileDistance(sq1.FileOf(), sq2.FileOf()), RankDistance(sq1.RankOf(), sq2.RankOf()))
			}
		}
	}
}

// start calculating the magic bitboards using the so called
// "fancy" approach
// https://www.chessprogramming.org/Magic_Bitboards
func initMagicBitboards() {
	rookDirections := [4]Direction{North, East, South, West}
	bishopDirections := [4]Direction{Northeast, Southeast, Southwest, Northwest}

	rookTable = make([]Bitboard, 0x19000)
	bishopTable = make([]Bitboard, 0x1480)

	initMagics(&rookTable, &rookMagics, &rookDirections)
	initMagics(&bishopTable, &bishopMagics, &bishopDirections)
}

// pre computes all possible attacked squares per color, piece
// and square
func pseudoAttacksPreCompute() {
	// steps for kings, pawns, knights for WHITE - negate for BLACK
	var steps = [][]Direction{
		{},
		{Northwest, North, Northeast, East},                                        // king
		{Northwest, Northeast},                                                     // pawn
		{West + Northwest, East + Northeast, North + Northwest, North + Northeast}} // knight

	// non-sliding attacks
	for c := White; c <= Black; c++ {
		for _, pt := range []PieceType{King, Pawn, Knight} {
			for s := SqA1; s <= SqH8; s++ {
				for i := 0; i < len(steps[pt]); i++ {
					to := Square(int(s) + c.Direction()*int(steps[pt][i]))
					if to.IsValid() && squareDistance[s][to] < 3 { // no wrap around board edges
						if pt == Pawn {
							pawnAttacks[c][s] |= sqBb[to]
						} else {
							pseudoAttacks[pt][s] |= sqBb[to]
						}
					}
				}
			}
		}
	}

	// sliding pieces pseudo attacks from the empty board sliding attack
	rookDirections := [4]Direction{North, East, South, West}
	bishopDirections := [4]Direction{Northeast, Southeast, Southwest, Northwest}
	for sq := SqA1; sq <= SqH8; sq++ {
		pseudoAttacks[Bishop][sq] = slidingAttack(&bishopDirections, sq, BbZero)
		pseudoAttacks[Rook][sq] = slidingAttack(&rookDirections, sq, BbZero)
		pseudoAttacks[Queen][sq] = pseudoAttacks[Bishop][sq] | pseudoAttacks[Rook][sq]
	}
}

// pre computes the squares between two squares and the full lines
// through two squares by walking each direction and recording the
// squares passed so far
func intermediatePreCompute() {
	ray := func(from Square, d Direction) Bitboard {
		b := BbZero
		for s := from.To(d); s != SqNone; s = s.To(d) {
			b.PushSquare(s)
		}
		return b
	}
	opposite := [8]Direction{South, West, North, East, Southwest, Northwest, Northeast, Southeast}
	for from := SqA1; from <= SqH8; from++ {
		for i, d := range Directions {
			line := ray(from, d) | ray(from, opposite[i]) | from.Bb()
			between := BbZero
			for s := from.To(d); s != SqNone; s = s.To(d) {
				intermediate[from][s] = between
				lineBb[from][s] = line
				between.PushSquare(s)
			}
		}
	}
}

func castlingMaskPreCompute() {
	castlingRightsMask[SqE1] = CastlingWhite
	castlingRightsMask[SqA1] = CastlingWhiteOOO
	castlingRightsMask[SqH1] = CastlingWhiteOO
	castlingRightsMask[SqE8] = CastlingBlack
	castlingRightsMask[SqA8] = CastlingBlackOOO
	castlingRightsMask[SqH8] = CastlingBlackOO
}
