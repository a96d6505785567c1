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

// Package movegen contains functionality to create pseudo legal
// moves on a chess position. The generators are split by move
// class (captures, quiets, evasions, quiet checks) so the staged
// move picker can generate each class lazily. All generators
// append to the given buffer and never check legality - the king
// may be left in check. The caller validates legality.
package movegen

import (
	"github.com/tmertens/TempoGo/internal/moveslice"
	"github.com/tmertens/TempoGo/internal/position"
	. "github.com/tmertens/TempoGo/internal/types"
)

// GenerateCaptures generates all pseudo legal capturing moves of
// the next player including en passant and queen promotions
// (with or without capture). Underpromotions are generated by
// GenerateQuiets.
func GenerateCaptures(p *position.Position, ml *moveslice.ExtMoveSlice) *moveslice.ExtMoveSlice {
	generatePawnCaptures(p, ml)
	generateOfficerMoves(p, genCap, BbAll, ml)
	generateKingMoves(p, genCap, ml)
	return ml
}

// GenerateQuiets generates all pseudo legal non capturing moves of
// the next player including castling and underpromotions.
func GenerateQuiets(p *position.Position, ml *moveslice.ExtMoveSlice) *moveslice.ExtMoveSlice {
	generatePawnQuiets(p, BbAll, ml)
	generateCastling(p, ml)
	generateOfficerMoves(p, genNonCap, BbAll, ml)
	generateKingMoves(p, genNonCap, ml)
	return ml
}

// GenerateEvasions generates all pseudo legal moves resolving a
// check on the next player's king: king steps out of the attack
// and, for single checks, blocks of the checking ray and captures
// of the checker. Must only be called when the side to move is
// in check.
func GenerateEvasions(p *position.Position, ml *moveslice.ExtMoveSlice) *moveslice.ExtMoveSlice {
	us := p.NextPlayer()
	kingSq := p.KingSquare(us)
	checkers := p.Checkers()

	// squares attacked by checking sliders - the king may not step
	// onto the prolonged checking ray
	sliderAttacks := BbZero
	sliders := checkers &^ (p.PiecesBb(us.Flip(), Knight) | p.PiecesBb(us.Flip(), Pawn))
	for sliders != 0 {
		checkSq := sliders.PopLsb()
		sliderAttacks |= Line(checkSq, kingSq) &^ checkSq.Bb()
	}

	// king steps
	kingMoves := GetPseudoAttacks(King, kingSq) &^ p.OccupiedBb(us) &^ sliderAttacks
	for kingMoves != 0 {
		ml.PushBack(CreateMove(kingSq, kingMoves.PopLsb(), Normal, PtNone))
	}

	// double check can only be evaded by king moves
	if checkers&(checkers-1) != 0 {
		return ml
	}

	checkerSq := checkers.Lsb()
	blockSquares := Intermediate(kingSq, checkerSq)

	// pawn captures of the checker
	myPawns := p.PiecesBb(us, Pawn)
	attackers := GetPawnAttacks(us.Flip(), checkerSq) & myPawns
	for attackers != 0 {
		fromSq := attackers.PopLsb()
		if us.PromotionRankBb().Has(checkerSq) {
			pushPromotions(fromSq, checkerSq, promoAll, ml)
		} else {
			ml.PushBack(CreateMove(fromSq, checkerSq, Normal, PtNone))
		}
	}

	// en passant capture when the checker is the just double
	// stepped pawn
	epSq := p.GetEnPassantSquare()
	if epSq != SqNone && checkerSq == epSq.To(us.Flip().MoveDirection()) {
		attackers = GetPawnAttacks(us.Flip(), epSq) & myPawns
		for attackers != 0 {
			ml.PushBack(CreateMove(attackers.PopLsb(), epSq, EnPassant, PtNone))
		}
	}

	// pawn pushes onto the blocking squares
	generatePawnQuiets(p, blockSquares, ml)
	// pawn push promotions blocking on the promotion rank are queen
	// promotions and therefore part of the capture class - generate
	// them here as well so evasions are complete
	generatePawnPushPromotions(p, blockSquares, promoQueen, ml)

	// officer captures of the checker and blocks
	generateOfficerMoves(p, genAll, blockSquares|checkerSq.Bb(), ml)

	return ml
}

// GenerateQuietChecks generates pseudo legal non capturing moves
// which give direct check to the opponent king. Promotions and
// castling are not considered, neither are discovered checks.
func GenerateQuietChecks(p *position.Position, ml *moveslice.ExtMoveSlice) *moveslice.ExtMoveSlice {
	// pawn pushes giving check
	generatePawnQuiets(p, p.CheckSquares(Pawn), ml)
	// officer moves giving check
	for pt := Knight; pt <= Queen; pt++ {
		generateOfficerMovesOf(p, pt, genNonCap, p.CheckSquares(pt), ml)
	}
	return ml
}

// LegalMoves generates all legal moves of the next player. Slow -
// meant for tests, perft and root move list setup.
func LegalMoves(p *position.Position) *moveslice.MoveSlice {
	buf := moveslice.NewExtMoveSlice(MaxMoves)
	if p.HasCheck() {
		GenerateEvasions(p, buf)
	} else {
		GenerateCaptures(p, buf)
		GenerateQuiets(p, buf)
	}
	legal := moveslice.NewMoveSlice(buf.Len())
	for _, em := range *buf {
		if p.IsLegalMove(em.Move) {
			legal.PushBack(em.Move)
		}
	}
	return legal
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// generation mode for the shared generator helpers
type genMode int

const (
	genCap    genMode = 0b01
	genNonCap genMode = 0b10
	genAll    genMode = genCap | genNonCap
)

// promotion piece selection
type promoMode int

const (
	promoQueen promoMode = iota
	promoUnder
	promoAll
)

func pushPromotions(fromSq Square, toSq Square, mode promoMode, ml *moveslice.ExtMoveSlice) {
	if mode == promoQueen || mode == promoAll {
		ml.PushBack(CreateMove(fromSq, toSq, Promotion, Queen))
	}
	if mode == promoUnder || mode == promoAll {
		ml.PushBack(CreateMove(fromSq, toSq, Promotion, Knight))
		ml.PushBack(CreateMove(fromSq, toSq, Promotion, Rook))
		ml.PushBack(CreateMove(fromSq, toSq, Promotion, Bishop))
	}
}

// generatePawnCaptures generates normal and en passant pawn
// captures plus queen promotions. The algorithm shifts the own
// pawn bitboard in the direction of pawn captures and ANDs it with
// the opponents pieces. With this we get all possible captures and
// can easily create the moves by using a loop over all captures
// and using the backward shift for the from square.
func generatePawnCaptures(p *position.Position, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	myPawns := p.PiecesBb(us, Pawn)
	oppPieces := p.OccupiedBb(us.Flip())

	for _, dir := range []Direction{West, East} {
		tmpCaptures := ShiftBitboard(myPawns, Direction(us.Direction())*North+dir) & oppPieces

		// promotion captures - queen promotions belong to the
		// capture class, underpromotions to the quiet class
		promCaptures := tmpCaptures & us.PromotionRankBb()
		for promCaptures != 0 {
			toSq := promCaptures.PopLsb()
			fromSq := toSq.To(Direction(us.Flip().Direction())*North - dir)
			pushPromotions(fromSq, toSq, promoQueen, ml)
		}

		// non promotion pawn captures
		tmpCaptures &^= us.PromotionRankBb()
		for tmpCaptures != 0 {
			toSq := tmpCaptures.PopLsb()
			fromSq := toSq.To(Direction(us.Flip().Direction())*North - dir)
			ml.PushBack(CreateMove(fromSq, toSq, Normal, PtNone))
		}
	}

	// en passant captures
	epSq := p.GetEnPassantSquare()
	if epSq != SqNone {
		for _, dir := range []Direction{West, East} {
			tmpCaptures := ShiftBitboard(epSq.Bb(), Direction(us.Flip().Direction())*North+dir) & myPawns
			if tmpCaptures != 0 {
				fromSq := tmpCaptures.PopLsb()
				ml.PushBack(CreateMove(fromSq, epSq, EnPassant, PtNone))
			}
		}
	}

	// pawn push promotions to queen (capture class by definition)
	generatePawnPushPromotions(p, BbAll, promoQueen, ml)
}

// generatePawnPushPromotions generates pawn single step promotions
// onto the given target squares
func generatePawnPushPromotions(p *position.Position, targets Bitboard, mode promoMode, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	myPawns := p.PiecesBb(us, Pawn)
	promMoves := ShiftBitboard(myPawns, us.MoveDirection()) & ^p.OccupiedAll() &
		us.PromotionRankBb() & targets
	for promMoves != 0 {
		toSq := promMoves.PopLsb()
		fromSq := toSq.To(us.Flip().MoveDirection())
		pushPromotions(fromSq, toSq, mode, ml)
	}
}

// generatePawnQuiets generates non capturing pawn moves onto the
// given target squares: single and double pawn pushes and
// underpromotions (the quiet share of the promotion moves).
func generatePawnQuiets(p *position.Position, targets Bitboard, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	myPawns := p.PiecesBb(us, Pawn)
	occupied := p.OccupiedAll()

	// move my pawns forward one step and keep all on not occupied
	// squares. Move pawns now on the double step rank another
	// square forward to check for pawn doubles.
	tmpMoves := ShiftBitboard(myPawns, us.MoveDirection()) & ^occupied
	tmpMovesDouble := ShiftBitboard(tmpMoves&us.PawnDoubleRank(), us.MoveDirection()) & ^occupied & targets

	// underpromotions (single pawn steps onto the promotion rank)
	promMoves := tmpMoves & us.PromotionRankBb() & targets
	for promMoves != 0 {
		toSq := promMoves.PopLsb()
		fromSq := toSq.To(us.Flip().MoveDirection())
		pushPromotions(fromSq, toSq, promoUnder, ml)
	}

	// capture underpromotions belong to the quiet class as well
	oppPieces := p.OccupiedBb(us.Flip())
	for _, dir := range []Direction{West, East} {
		promCaptures := ShiftBitboard(myPawns, Direction(us.Direction())*North+dir) &
			oppPieces & us.PromotionRankBb() & targets
		for promCaptures != 0 {
			toSq := promCaptures.PopLsb()
			fromSq := toSq.To(Direction(us.Flip().Direction())*North - dir)
			pushPromotions(fromSq, toSq, promoUnder, ml)
		}
	}

	// double pawn steps
	for tmpMovesDouble != 0 {
		toSq := tmpMovesDouble.PopLsb()
		fromSq := toSq.To(us.Flip().MoveDirection()).To(us.Flip().MoveDirection())
		ml.PushBack(CreateMove(fromSq, toSq, Normal, PtNone))
	}

	// normal single pawn steps
	tmpMoves = tmpMoves & ^us.PromotionRankBb() & targets
	for tmpMoves != 0 {
		toSq := tmpMoves.PopLsb()
		fromSq := toSq.To(us.Flip().MoveDirection())
		ml.PushBack(CreateMove(fromSq, toSq, Normal, PtNone))
	}
}

// generateCastling generates pseudo castling moves - attacked
// crossing squares are not checked here
func generateCastling(p *position.Position, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	occupied := p.OccupiedAll()
	cr := p.CastlingRights()

	if cr == CastlingNone {
		return
	}
	if us == White {
		if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupied == 0 {
			ml.PushBack(CreateMove(SqE1, SqG1, Castling, PtNone))
		}
		if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupied == 0 {
			ml.PushBack(CreateMove(SqE1, SqC1, Castling, PtNone))
		}
	} else {
		if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupied == 0 {
			ml.PushBack(CreateMove(SqE8, SqG8, Castling, PtNone))
		}
		if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupied == 0 {
			ml.PushBack(CreateMove(SqE8, SqC8, Castling, PtNone))
		}
	}
}

// generateKingMoves generates king captures or quiet king moves -
// attacked target squares are not checked here
func generateKingMoves(p *position.Position, mode genMode, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	kingSq := p.KingSquare(us)
	pseudoMoves := GetPseudoAttacks(King, kingSq)

	if mode&genCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(us.Flip())
		for captures != 0 {
			ml.PushBack(CreateMove(kingSq, captures.PopLsb(), Normal, PtNone))
		}
	}
	if mode&genNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			ml.PushBack(CreateMove(kingSq, nonCaptures.PopLsb(), Normal, PtNone))
		}
	}
}

// generateOfficerMoves generates moves for knight, bishop, rook
// and queen onto the given target squares using the attacks
// pre-computed with magic bitboards
func generateOfficerMoves(p *position.Position, mode genMode, targets Bitboard, ml *moveslice.ExtMoveSlice) {
	for pt := Knight; pt <= Queen; pt++ {
		generateOfficerMovesOf(p, pt, mode, targets, ml)
	}
}

func generateOfficerMovesOf(p *position.Position, pt PieceType, mode genMode, targets Bitboard, ml *moveslice.ExtMoveSlice) {
	us := p.NextPlayer()
	occupied := p.OccupiedAll()
	pieces := p.PiecesBb(us, pt)

	for pieces != 0 {
		fromSq := pieces.PopLsb()
		moves := GetAttacksBb(pt, fromSq, occupied)

		if mode&genCap != 0 {
			captures := moves & p.OccupiedBb(us.Flip()) & targets
			for captures != 0 {
				ml.PushBack(CreateMove(fromSq, captures.PopLsb(), Normal, PtNone))
			}
		}
		if mode&genNonCap != 0 {
			nonCaptures := moves &^ occupied & targets
			for nonCaptures != 0 {
				ml.PushBack(CreateMove(fromSq, nonCaptures.PopLsb(), Normal, PtNone))
			}
		}
	}
}
