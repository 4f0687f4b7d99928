package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/domain/squad"
	"github.com/riskibarqy/smfc-manager/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/smfc-manager/internal/platform/id"
)

type squadFixture struct {
	sessions *SessionService
	squads   *SquadService
}

func newSquadFixture(roster []player.Player) squadFixture {
	sessionRepo := memory.NewSessionRepository(0)
	return squadFixture{
		sessions: NewSessionService(memory.NewPlayerRepository(roster), sessionRepo, id.NewSequenceGenerator("session"), nil),
		squads:   NewSquadService(sessionRepo, SquadServiceConfig{DefaultFormat: "9v9", DefaultVenue: "BFC"}, nil),
	}
}

func akhil() player.Player {
	return player.Player{
		ID:         "p-akhil",
		Name:       "Akhil",
		Position:   player.PositionForward,
		Attributes: player.Attributes{Pace: 88, Shooting: 85, Passing: 70, Dribbling: 82, Defense: 40, Physicality: 75},
		StarRating: 3,
	}
}

func TestSquadService_GenerateWithGuestAndPlaceInFiveASide(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture([]player.Player{akhil()})
	sess, _ := fx.sessions.Create(ctx)

	if _, err := fx.sessions.ToggleSelection(ctx, sess.ID, "p-akhil"); err != nil {
		t.Fatalf("toggle selection: %v", err)
	}
	if _, err := fx.sessions.SetGuests(ctx, sess.ID, "Temp"); err != nil {
		t.Fatalf("set guests: %v", err)
	}

	generated, err := fx.squads.Generate(ctx, sess.ID, GenerateInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if generated.Squad.Size(squad.TeamRed) != 1 || generated.Squad.Size(squad.TeamBlue) != 1 {
		t.Fatalf("expected 1-1 split, got red=%d blue=%d", generated.Squad.Size(squad.TeamRed), generated.Squad.Size(squad.TeamBlue))
	}
	if generated.Format != "9v9" {
		t.Fatalf("expected default format, got %s", generated.Format)
	}

	lineup, err := fx.squads.Lineup(ctx, sess.ID, "5 vs 5")
	if err != nil {
		t.Fatalf("lineup: %v", err)
	}
	if lineup.Format != "5v5" {
		t.Fatalf("unexpected format: %s", lineup.Format)
	}
	if len(lineup.Red.OnPitch)+len(lineup.Blue.OnPitch) != 2 {
		t.Fatalf("expected both players on pitch")
	}
	if len(lineup.Red.Substitutes)+len(lineup.Blue.Substitutes) != 0 {
		t.Fatalf("expected no substitutes")
	}
}

func TestSquadService_GenerateWithoutPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sess, _ := fx.sessions.Create(ctx)

	_, err := fx.squads.Generate(ctx, sess.ID, GenerateInput{})
	if !errors.Is(err, ErrNothingToGenerate) {
		t.Fatalf("expected ErrNothingToGenerate, got %v", err)
	}
}

func TestSquadService_GenerateRejectsUnknownPolicyAndFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sess, _ := fx.sessions.Create(ctx)

	if _, err := fx.squads.Generate(ctx, sess.ID, GenerateInput{Policy: "coin-toss"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for policy, got %v", err)
	}
	if _, err := fx.squads.Generate(ctx, sess.ID, GenerateInput{Format: "11v11"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for format, got %v", err)
	}
}

func generatedSession(t *testing.T, fx squadFixture) string {
	t.Helper()

	ctx := context.Background()
	sess, _ := fx.sessions.Create(ctx)
	text := "1. Akhil\n2. Aravind\n3. Isa\n4. Anchal\n5. Melwin\n6. Vaibhav"
	if _, _, err := fx.sessions.SelectFromList(ctx, sess.ID, text); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := fx.squads.Generate(ctx, sess.ID, GenerateInput{Format: "7v7"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	return sess.ID
}

func TestSquadService_TransferAppliedAndRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sessionID := generatedSession(t, fx)

	current, err := fx.squads.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	red := current.Team(squad.TeamRed)[0].Player
	blue := current.Team(squad.TeamBlue)[0].Player

	outcome, err := fx.squads.Transfer(ctx, sessionID, red.Name, blue.ID)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !outcome.Applied {
		t.Fatalf("expected transfer to apply: %s", outcome.Message)
	}
	if len(outcome.Squad.Transfers) != 1 || !strings.Contains(outcome.Squad.Transfers[0], "↔") {
		t.Fatalf("unexpected transfer log: %v", outcome.Squad.Transfers)
	}

	rejected, err := fx.squads.Transfer(ctx, sessionID, "Ghost", blue.Name)
	if err != nil {
		t.Fatalf("rejected transfer should not error: %v", err)
	}
	if rejected.Applied || rejected.Message == "" {
		t.Fatalf("expected no-op with message, got %+v", rejected)
	}

	after, _ := fx.squads.Get(ctx, sessionID)
	if len(after.Transfers) != 1 {
		t.Fatalf("expected rejected transfer to leave log alone, got %v", after.Transfers)
	}
}

func TestSquadService_TransferWithoutSquad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sess, _ := fx.sessions.Create(ctx)

	if _, err := fx.squads.Transfer(ctx, sess.ID, "a", "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSquadService_LineupUsesGeneratedFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sessionID := generatedSession(t, fx)

	lineup, err := fx.squads.Lineup(ctx, sessionID, "")
	if err != nil {
		t.Fatalf("lineup: %v", err)
	}
	if lineup.Format != "7v7" {
		t.Fatalf("expected generated format 7v7, got %s", lineup.Format)
	}
	if len(lineup.Red.OnPitch) != 3 || len(lineup.Blue.OnPitch) != 3 {
		t.Fatalf("expected 3 per side on pitch, got red=%d blue=%d", len(lineup.Red.OnPitch), len(lineup.Blue.OnPitch))
	}
	if _, err := fx.squads.Lineup(ctx, sessionID, "3v3"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}
}

func TestSquadService_SummaryRoundTripsThroughParser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sessionID := generatedSession(t, fx)

	text, err := fx.squads.Summary(ctx, sessionID, SummaryInput{
		Date:    "2026-10-17",
		Kickoff: "07:00",
		LateFee: "50",
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.HasPrefix(text, "Date: Saturday, 17 Oct\nTime: 07:00 AM - 08:30 AM\nGround: BFC\n") {
		t.Fatalf("unexpected summary header:\n%s", text)
	}

	parsed := matchrecord.ParseLog(text, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), "Elsewhere")
	if parsed.Date != "2026-10-17" || parsed.Venue != "BFC" {
		t.Fatalf("unexpected parsed header: %+v", parsed)
	}
	if len(parsed.TeamBlue) != 3 || len(parsed.TeamRed) != 3 {
		t.Fatalf("expected 3 names per team, got blue=%v red=%v", parsed.TeamBlue, parsed.TeamRed)
	}
}

func TestSquadService_SummaryValidatesInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fx := newSquadFixture(memory.SeedRoster())
	sessionID := generatedSession(t, fx)

	cases := []SummaryInput{
		{Date: "17/10/2026", Kickoff: "07:00"},
		{Date: "2026-10-17", Kickoff: "7am"},
		{Date: "2026-10-17", Kickoff: "07:00", DurationMinutes: 30},
	}
	for _, input := range cases {
		if _, err := fx.squads.Summary(ctx, sessionID, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}
