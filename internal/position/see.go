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

package position

import (
	. "github.com/tmertens/TempoGo/internal/types"
)

// See determines the static exchange evaluation of a move: the
// material balance after all forced captures on the target square
// assuming optimal exchange ordering by both sides.
func (p *Position) See(move Move) Value {

	// en passant moves are ignored in a sense that they will be a
	// winning capture and therefore should lead to no cut-offs when
	// using See()
	if move.MoveType() == EnPassant {
		return Pawn.ValueOf()
	}

	// store for the capture gains per exchange ply - max 32 pieces
	var gain [32]Value

	ply := 0
	toSquare := move.To()
	fromSquare := move.From()
	movedPiece := p.board[fromSquare]
	nextPlayer := p.nextPlayer

	// all occupied squares to remove single pieces later to reveal
	// hidden attacks (x-ray)
	occupiedBitboard := p.OccupiedAll()

	// all attacks to the target square as a bitboard
	remainingAttacks := p.attacksTo(toSquare, White) | p.attacksTo(toSquare, Black)

	// initial value of the first capture
	gain[ply] = p.board[toSquare].ValueOf()

	// loop through all remaining attacks/captures
	for {
		ply++
		nextPlayer = nextPlayer.Flip()

		// speculative store, if defended
		if move.MoveType() == Promotion {
			gain[ply] = move.PromotionType().ValueOf() - Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		// pruning if defended - will not change the final see score
		if maxValue(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttacks.PopSquare(fromSquare) // traverse the attack set
		occupiedBitboard.PopSquare(fromSquare) // reveal x-rays

		// reevaluate attacks to reveal attacks after removing the
		// moving piece
		remainingAttacks |= p.revealedAttacks(toSquare, occupiedBitboard, White) |
			p.revealedAttacks(toSquare, occupiedBitboard, Black)

		// determine next capture
		fromSquare = p.leastValuablePiece(remainingAttacks, nextPlayer)

		// break if no more attackers
		if fromSquare == SqNone {
			break
		}
		movedPiece = p.board[fromSquare]
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -maxValue(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// SeeGe returns true when the static exchange evaluation of the
// move is greater than or equal to the given threshold
func (p *Position) SeeGe(move Move, threshold Value) bool {
	return p.See(move) >= threshold
}

// SeeKey returns a derived key for the SEE cache built from the
// position key, the move and the attacked piece
func (p *Position) SeeKey(move Move, attacked Piece) Key {
	return p.zobristKey ^
		zobristBase.seeMove[move.FromTo()] ^
		zobristBase.pieces[attacked][move.To()]
}

// attacksTo determines all attacks of the given color to the square
// for SEE. En passant is not included as the move preceding en
// passant is always non capturing.
func (p *Position) attacksTo(square Square, color Color) Bitboard {
	occupiedAll := p.OccupiedAll()
	return (GetPawnAttacks(color.Flip(), square) & p.piecesBb[color][Pawn]) |
		(GetPseudoAttacks(Knight, square) & p.piecesBb[color][Knight]) |
		(GetPseudoAttacks(King, square) & p.piecesBb[color][King]) |
		(GetAttacksBb(Rook, square, occupiedAll) & (p.piecesBb[color][Rook] | p.piecesBb[color][Queen])) |
		(GetAttacksBb(Bishop, square, occupiedAll) & (p.piecesBb[color][Bishop] | p.piecesBb[color][Queen]))
}

// revealedAttacks returns sliding attacks after a piece has been
// removed to reveal new attacks. Only sliders can be revealed.
func (p *Position) revealedAttacks(square Square, occupied Bitboard, color Color) Bitboard {
	return (GetAttacksBb(Rook, square, occupied) & (p.piecesBb[color][Rook] | p.piecesBb[color][Queen]) & occupied) |
		(GetAttacksBb(Bishop, square, occupied) & (p.piecesBb[color][Bishop] | p.piecesBb[color][Queen]) & occupied)
}

// leastValuablePiece returns the square of the least valuable
// attacker of the given color within the attack set. When several
// of the same type are available it uses the least significant bit.
func (p *Position) leastValuablePiece(attacks Bitboard, color Color) Square {
	switch {
	case attacks&p.piecesBb[color][Pawn] != 0:
		return (attacks & p.piecesBb[color][Pawn]).Lsb()
	case attacks&p.piecesBb[color][Knight] != 0:
		return (attacks & p.piecesBb[color][Knight]).Lsb()
	case attacks&p.piecesBb[color][Bishop] != 0:
		return (attacks & p.piecesBb[color][Bishop]).Lsb()
	case attacks&p.piecesBb[color][Rook] != 0:
		return (attacks & p.piecesBb[color][Rook]).Lsb()
	case attacks&p.piecesBb[color][Queen] != 0:
		return (attacks & p.piecesBb[color][Queen]).Lsb()
	case attacks&p.piecesBb[color][King] != 0:
		return (attacks & p.piecesBb[color][King]).Lsb()
	default:
		return SqNone
	}
}

func maxValue(x, y Value) Value {
	if x > y {
		return x
	}
	return y
}
