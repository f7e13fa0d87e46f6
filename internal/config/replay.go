package config

import "github.com/lgbarn/chess-rules-go/internal/chess"

// ReplayConfig holds settings for driving games from move scripts.
type ReplayConfig struct {
	// PromotionDefault is the kind chosen when a promoting move names none
	PromotionDefault chess.Kind

	// StopOnReject ends a script at its first rejected move
	StopOnReject bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		PromotionDefault: chess.Queen,
	}
}
