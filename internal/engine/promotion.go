package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// PromotionResolver chooses the kind a pawn becomes on the far back rank.
// Returning anything other than Queen, Rook, Bishop or Knight rejects the
// move with ErrInvalidPromotionKind.
type PromotionResolver interface {
	RequestPromotionChoice(colour chess.Colour, sq chess.Square) chess.Kind
}

// PromotionResolverFunc adapts a function to PromotionResolver.
type PromotionResolverFunc func(colour chess.Colour, sq chess.Square) chess.Kind

// RequestPromotionChoice calls f.
func (f PromotionResolverFunc) RequestPromotionChoice(colour chess.Colour, sq chess.Square) chess.Kind {
	return f(colour, sq)
}

// FixedResolver always answers with the same kind.
func FixedResolver(kind chess.Kind) PromotionResolver {
	return PromotionResolverFunc(func(chess.Colour, chess.Square) chess.Kind {
		return kind
	})
}

// DefaultResolver promotes to a queen. Games use it unless another resolver
// is installed.
var DefaultResolver = FixedResolver(chess.Queen)
