// Package strength measures how playing quality degrades across skill
// levels.
//
// For every suite position, a full-strength reference search first
// establishes the best achievable score. Each skill level under test
// then picks its move, and the position after that move is searched
// again at reference strength. The gap between the reference score and
// the score actually obtained is the centipawn loss of the move; lower
// losses mean stronger play.
package strength

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/woodpusher"
	"github.com/discochess/woodpusher/benchmark/suite"
	"github.com/discochess/woodpusher/internal/search"
)

// lossCapCentipawns bounds the per-move loss so a single blunder into
// mate cannot dominate the sample statistics.
const lossCapCentipawns = 1000

// ErrNoSkills is returned when Options names no skill levels.
var ErrNoSkills = errors.New("strength: no skill levels")

// Options configures a strength run.
type Options struct {
	// Skills are the skill levels to measure, each 0..20.
	Skills []int

	// ReferenceDepth is the depth of the full-strength searches that
	// anchor the loss measurement. Must be at least 2 so the reply
	// search still has depth left.
	ReferenceDepth int

	// Seed makes runs reproducible. Each skill level derives its own
	// session seed from it.
	Seed uint64

	// Logger receives per-position progress at debug level. Nil means
	// no logging.
	Logger *zap.Logger
}

// SkillSample holds the measured losses for one skill level.
type SkillSample struct {
	Skill  int
	Losses []float64 // Centipawn loss per suite position.
}

// Run measures every skill level in opts against the given positions.
// Samples come back in the order the skills were given.
func Run(ctx context.Context, positions []suite.Position, opts Options) ([]SkillSample, error) {
	if len(opts.Skills) == 0 {
		return nil, ErrNoSkills
	}
	if opts.ReferenceDepth < 2 {
		return nil, fmt.Errorf("strength: reference depth %d too shallow", opts.ReferenceDepth)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reference, err := woodpusher.New(
		woodpusher.WithSkillLevel(search.MaxSkill),
		woodpusher.WithSeed(opts.Seed),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reference session: %w", err)
	}
	defer reference.Close()

	sessions := make([]*woodpusher.Session, len(opts.Skills))
	for i, skill := range opts.Skills {
		s, err := woodpusher.New(
			woodpusher.WithSkillLevel(skill),
			woodpusher.WithSeed(opts.Seed+uint64(i)+1),
		)
		if err != nil {
			return nil, fmt.Errorf("creating skill %d session: %w", skill, err)
		}
		defer s.Close()
		sessions[i] = s
	}

	samples := make([]SkillSample, len(opts.Skills))
	for i, skill := range opts.Skills {
		samples[i] = SkillSample{Skill: skill}
	}

	for _, pos := range positions {
		refResult, err := reference.BestMove(ctx, pos.FEN, woodpusher.Limits{Depth: opts.ReferenceDepth})
		if err != nil {
			return nil, fmt.Errorf("reference search of %q: %w", pos.FEN, err)
		}
		if refResult.Best == nil {
			// Game already over; nothing to measure here.
			continue
		}
		refScore := centipawns(refResult.Score)

		for i, session := range sessions {
			result, err := session.BestMove(ctx, pos.FEN, woodpusher.Limits{Depth: opts.ReferenceDepth})
			if err != nil {
				return nil, fmt.Errorf("skill %d search of %q: %w", opts.Skills[i], pos.FEN, err)
			}
			if result.Best == nil {
				continue
			}

			obtained, err := moveValue(ctx, reference, pos.FEN, result.Best.String(), opts.ReferenceDepth-1)
			if err != nil {
				return nil, fmt.Errorf("valuing %s at skill %d: %w", result.Best, opts.Skills[i], err)
			}

			loss := refScore - obtained
			if loss < 0 {
				// The shallower reply search occasionally ranks the
				// chosen move above the reference one; that is noise,
				// not negative loss.
				loss = 0
			}
			if loss > lossCapCentipawns {
				loss = lossCapCentipawns
			}
			samples[i].Losses = append(samples[i].Losses, loss)

			logger.Debug("measured move",
				zap.String("position", pos.ID),
				zap.Int("skill", opts.Skills[i]),
				zap.String("move", result.Best.String()),
				zap.Float64("lossCp", loss))
		}
	}

	return samples, nil
}

// moveValue plays uci on the position and searches the resulting
// position at reference strength. The returned score is from the
// original mover's point of view.
func moveValue(ctx context.Context, reference *woodpusher.Session, fen, uci string, depth int) (float64, error) {
	next, err := reference.ApplyMove(fen, uci)
	if err != nil {
		return 0, err
	}

	reply, err := reference.BestMove(ctx, next, woodpusher.Limits{Depth: depth})
	if err != nil {
		return 0, err
	}
	// The reply score is from the opponent's point of view.
	return -centipawns(reply.Score), nil
}

// centipawns flattens a score to centipawns, saturating mates.
func centipawns(s woodpusher.Score) float64 {
	return s.Pawns() * 100
}
