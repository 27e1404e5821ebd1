// internal/lobby/service.go
//
// Lobby lifecycle over an injected store.Store.
// Responsibilities:
//   - Create lobbies under fresh numeric codes (regenerated on collision).
//   - Seat players, add spectators, apply moves, serve state snapshots.
//   - Evaluate the turn clock first on every call that touches a lobby, so
//     a timeout resolves the same way whichever endpoint is polled next.
//   - Report finished games to an optional Recorder.
//
// Identity is whatever opaque userId the client sends. Role checks trust it;
// there is no server-issued credential.

package lobby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/1oridevs/5-in-a-row/internal/game"
	"github.com/1oridevs/5-in-a-row/internal/store"
)

const maxCodeAttempts = 20

// Recorder receives every game that reaches a terminal phase.
type Recorder interface {
	Record(ctx context.Context, g *game.Game) error
}

// Service implements the lobby operations.
type Service struct {
	store    store.Store
	rules    game.Rules
	now      func() time.Time
	newCode  func() (string, error)
	recorder Recorder
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithRecorder reports finished games to r.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithCodeGenerator overrides NewCode.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newCode = gen }
}

// NewService returns a Service creating lobbies with rules.
func NewService(st store.Store, rules game.Rules, opts ...Option) *Service {
	s := &Service{store: st, rules: rules, now: time.Now, newCode: NewCode}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Rules returns the rules new lobbies are created with.
func (s *Service) Rules() game.Rules { return s.rules }

// CreateLobby allocates a game with creatorID in the first seat and
// returns its code.
func (s *Service) CreateLobby(ctx context.Context, creatorID, nickname string) (string, error) {
	now := s.now()
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate lobby code: %w", err)
		}
		g, err := game.New(code, s.rules, creatorID, nickname, now)
		if err != nil {
			return "", err
		}
		err = s.store.Create(ctx, g)
		if errors.Is(err, store.ErrExists) {
			log.Debug().Str("lobby", code).Msg("code collision, regenerating")
			continue
		}
		if err != nil {
			return "", err
		}
		log.Info().Str("lobby", code).Str("userId", creatorID).Msg("lobby created")
		return code, nil
	}
	return "", fmt.Errorf("no free lobby code after %d attempts", maxCodeAttempts)
}

// JoinLobby seats userID if a seat is free, otherwise adds them as a
// spectator. Seating the second player starts the game.
func (s *Service) JoinLobby(ctx context.Context, code, userID, nickname string) (game.Role, error) {
	var role game.Role
	now := s.now()
	_, err := s.update(ctx, code, now, func(g *game.Game) error {
		err := g.AddPlayer(userID, nickname, now)
		if errors.Is(err, game.ErrLobbyFull) {
			role = game.RoleSpectator
			return g.AddSpectator(userID, nickname)
		}
		if err != nil {
			return err
		}
		role = game.RolePlayer
		if g.Status.Phase == game.PhaseInProgress {
			log.Info().Str("lobby", code).Msg("game started")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Info().Str("lobby", code).Str("userId", userID).Str("role", string(role)).Msg("joined lobby")
	return role, nil
}

// JoinAsSpectator adds userID as an observer.
func (s *Service) JoinAsSpectator(ctx context.Context, code, userID, nickname string) error {
	_, err := s.update(ctx, code, s.now(), func(g *game.Game) error {
		return g.AddSpectator(userID, nickname)
	})
	if err != nil {
		return err
	}
	log.Info().Str("lobby", code).Str("userId", userID).Msg("spectator joined")
	return nil
}

// MakeMove drops userID's disc into column.
func (s *Service) MakeMove(ctx context.Context, code, userID string, column int) (game.Snapshot, error) {
	now := s.now()
	g, err := s.update(ctx, code, now, func(g *game.Game) error {
		_, err := g.ApplyMove(userID, column, now)
		return err
	})
	if err != nil {
		return game.Snapshot{}, err
	}
	if g.GameOver() {
		log.Info().Str("lobby", code).Str("winner", g.Status.Winner).Msg(g.Status.Message)
	}
	return g.Snapshot(now), nil
}

// GameState returns the full lobby state.
func (s *Service) GameState(ctx context.Context, code string) (game.Snapshot, error) {
	return s.poll(ctx, code)
}

// CheckTimer resolves an expired turn, if any, and returns the state.
func (s *Service) CheckTimer(ctx context.Context, code string) (game.Snapshot, error) {
	return s.poll(ctx, code)
}

func (s *Service) poll(ctx context.Context, code string) (game.Snapshot, error) {
	now := s.now()
	g, err := s.update(ctx, code, now, nil)
	if err != nil {
		return game.Snapshot{}, err
	}
	return g.Snapshot(now), nil
}

// update runs op on the lobby after applying the turn clock. A clock
// transition is kept even when op is rejected.
func (s *Service) update(ctx context.Context, code string, now time.Time, op func(g *game.Game) error) (*game.Game, error) {
	var wasOver bool
	g, err := s.store.Update(ctx, code, func(g *game.Game) error {
		wasOver = g.GameOver()
		if g.Tick(now) {
			log.Info().Str("lobby", code).Str("currentPlayer", g.Status.CurrentPlayer).
				Str("phase", string(g.Status.Phase)).Msg("turn clock expired")
		}
		g.UpdatedAt = now
		if op == nil {
			return nil
		}
		return op(g)
	})
	if g != nil && !wasOver && g.GameOver() {
		s.record(ctx, g)
	}
	return g, err
}

func (s *Service) record(ctx context.Context, g *game.Game) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, g); err != nil {
		log.Warn().Err(err).Str("lobby", g.Code).Msg("record result")
	}
}
