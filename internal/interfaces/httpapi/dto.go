package httpapi

import (
	"time"

	"github.com/riskibarqy/smfc-manager/internal/domain/formation"
	"github.com/riskibarqy/smfc-manager/internal/domain/leaderboard"
	"github.com/riskibarqy/smfc-manager/internal/domain/matchrecord"
	"github.com/riskibarqy/smfc-manager/internal/domain/player"
	"github.com/riskibarqy/smfc-manager/internal/domain/session"
	"github.com/riskibarqy/smfc-manager/internal/domain/squad"
	"github.com/riskibarqy/smfc-manager/internal/usecase"
)

type attributesDTO struct {
	Pace        float64 `json:"pace"`
	Shooting    float64 `json:"shooting"`
	Passing     float64 `json:"passing"`
	Dribbling   float64 `json:"dribbling"`
	Defense     float64 `json:"defense"`
	Physicality float64 `json:"physicality"`
}

type playerDTO struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Position   string        `json:"position"`
	Attributes attributesDTO `json:"attributes"`
	StarRating float64       `json:"star_rating"`
	Power      float64       `json:"power"`
	Selected   bool          `json:"selected"`
	Guest      bool          `json:"guest,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		Name:     p.Name,
		Position: string(p.Position),
		Attributes: attributesDTO{
			Pace:        p.Attributes.Pace,
			Shooting:    p.Attributes.Shooting,
			Passing:     p.Attributes.Passing,
			Dribbling:   p.Attributes.Dribbling,
			Defense:     p.Attributes.Defense,
			Physicality: p.Attributes.Physicality,
		},
		StarRating: p.StarRating,
		Power:      player.ComputePower(p),
		Selected:   p.Selected,
		Guest:      p.Guest,
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type guestDTO struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	StarRating float64 `json:"star_rating"`
}

type sessionDTO struct {
	ID              string      `json:"id"`
	Roster          []playerDTO `json:"roster"`
	Guests          []guestDTO  `json:"guests"`
	SelectedCount   int         `json:"selected_count"`
	GuestCount      int         `json:"guest_count"`
	TotalCount      int         `json:"total_count"`
	Format          string      `json:"format,omitempty"`
	HasSquad        bool        `json:"has_squad"`
	PositionChanges []string    `json:"position_changes"`
	Degraded        bool        `json:"degraded"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func sessionToDTO(s session.Session) sessionDTO {
	guests := make([]guestDTO, 0, len(s.Guests))
	for _, g := range s.Guests {
		guests = append(guests, guestDTO{Name: g.Name, Position: string(g.Position), StarRating: g.StarRating})
	}
	changes := s.PositionChanges
	if changes == nil {
		changes = []string{}
	}
	selected := s.SelectedCount()

	return sessionDTO{
		ID:              s.ID,
		Roster:          playersToDTO(s.Roster),
		Guests:          guests,
		SelectedCount:   selected,
		GuestCount:      len(s.Guests),
		TotalCount:      selected + len(s.Guests),
		Format:          s.Format,
		HasSquad:        s.Squad != nil,
		PositionChanges: changes,
		Degraded:        s.Degraded,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type pasteResultDTO struct {
	Session   sessionDTO `json:"session"`
	Matched   []string   `json:"matched"`
	NewGuests []string   `json:"new_guests"`
}

type memberDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Power    float64 `json:"power"`
	Guest    bool    `json:"guest,omitempty"`
}

type teamDTO struct {
	Size         int         `json:"size"`
	AveragePower float64     `json:"average_power"`
	Members      []memberDTO `json:"members"`
}

type squadDTO struct {
	Policy    string   `json:"policy"`
	Red       teamDTO  `json:"red"`
	Blue      teamDTO  `json:"blue"`
	PowerGap  float64  `json:"power_gap"`
	Transfers []string `json:"transfers"`
}

func teamToDTO(s squad.Squad, t squad.Team) teamDTO {
	members := s.Team(t)
	out := teamDTO{
		Size:         len(members),
		AveragePower: s.AveragePower(t),
		Members:      make([]memberDTO, 0, len(members)),
	}
	for _, m := range members {
		out.Members = append(out.Members, memberDTO{
			ID:       m.Player.ID,
			Name:     m.Player.Name,
			Position: string(m.Player.Position),
			Power:    m.Power,
			Guest:    m.Player.Guest,
		})
	}
	return out
}

func squadToDTO(s squad.Squad) squadDTO {
	red := teamToDTO(s, squad.TeamRed)
	blue := teamToDTO(s, squad.TeamBlue)
	gap := red.AveragePower - blue.AveragePower
	if gap < 0 {
		gap = -gap
	}
	transfers := s.Transfers
	if transfers == nil {
		transfers = []string{}
	}
	return squadDTO{
		Policy:    string(s.Policy),
		Red:       red,
		Blue:      blue,
		PowerGap:  player.Round1(gap),
		Transfers: transfers,
	}
}

type transferDTO struct {
	Applied bool     `json:"applied"`
	Entry   string   `json:"entry,omitempty"`
	Message string   `json:"message"`
	Squad   squadDTO `json:"squad"`
}

type slotDTO struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Line       string `json:"line"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	OutOfPlace bool   `json:"out_of_position"`
}

type placementDTO struct {
	OnPitch     []slotDTO   `json:"on_pitch"`
	Substitutes []memberDTO `json:"substitutes"`
}

type lineupDTO struct {
	Format string       `json:"format"`
	Red    placementDTO `json:"red"`
	Blue   placementDTO `json:"blue"`
}

func placementToDTO(p formation.Placement) placementDTO {
	out := placementDTO{
		OnPitch:     make([]slotDTO, 0, len(p.OnPitch)),
		Substitutes: make([]memberDTO, 0, len(p.Substitutes)),
	}
	for _, slot := range p.OnPitch {
		out.OnPitch = append(out.OnPitch, slotDTO{
			PlayerID:   slot.Player.ID,
			Name:       slot.Player.Name,
			Position:   string(slot.Player.Position),
			Line:       string(slot.Line),
			X:          slot.Point.X,
			Y:          slot.Point.Y,
			OutOfPlace: slot.OutOfPos,
		})
	}
	for _, sub := range p.Substitutes {
		out.Substitutes = append(out.Substitutes, memberDTO{
			ID:       sub.ID,
			Name:     sub.Name,
			Position: string(sub.Position),
			Power:    player.ComputePower(sub),
			Guest:    sub.Guest,
		})
	}
	return out
}

func lineupToDTO(l usecase.Lineup) lineupDTO {
	return lineupDTO{
		Format: l.Format,
		Red:    placementToDTO(l.Red),
		Blue:   placementToDTO(l.Blue),
	}
}

type summaryDTO struct {
	Text string `json:"text"`
}

type matchDTO struct {
	ID        string   `json:"id,omitempty"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Venue     string   `json:"venue"`
	ScoreBlue int      `json:"score_blue"`
	ScoreRed  int      `json:"score_red"`
	Winner    string   `json:"winner"`
	TeamBlue  []string `json:"team_blue"`
	TeamRed   []string `json:"team_red"`
}

func matchToDTO(m matchrecord.MatchRecord) matchDTO {
	blue, red := m.TeamBlue, m.TeamRed
	if blue == nil {
		blue = []string{}
	}
	if red == nil {
		red = []string{}
	}
	return matchDTO{
		ID:        m.ID,
		Date:      m.Date,
		Time:      m.Time,
		Venue:     m.Venue,
		ScoreBlue: m.ScoreBlue,
		ScoreRed:  m.ScoreRed,
		Winner:    string(m.Winner),
		TeamBlue:  blue,
		TeamRed:   red,
	}
}

func matchesToDTO(items []matchrecord.MatchRecord) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

type leaderboardEntryDTO struct {
	Rank       int      `json:"rank"`
	Name       string   `json:"name"`
	Matches    int      `json:"matches"`
	Wins       int      `json:"wins"`
	Losses     int      `json:"losses"`
	Draws      int      `json:"draws"`
	WinPercent int      `json:"win_percent"`
	Form       []string `json:"form"`
}

type leaderboardDTO struct {
	Entries  []leaderboardEntryDTO `json:"entries"`
	Degraded bool                  `json:"degraded"`
}

func leaderboardEntriesToDTO(entries []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		form := make([]string, 0, len(e.Form))
		for _, r := range e.Form {
			form = append(form, string(r))
		}
		out = append(out, leaderboardEntryDTO{
			Rank:       e.Rank,
			Name:       e.Name,
			Matches:    e.Matches,
			Wins:       e.Wins,
			Losses:     e.Losses,
			Draws:      e.Draws,
			WinPercent: e.WinPercent,
			Form:       form,
		})
	}
	return out
}

type spotlightDTO struct {
	Title string   `json:"title"`
	Value int      `json:"value"`
	Names []string `json:"names"`
}

type spotlightsDTO struct {
	Commitment spotlightDTO `json:"commitment"`
	Star       spotlightDTO `json:"star"`
	Losses     spotlightDTO `json:"losses"`
}

func spotlightToDTO(s leaderboard.Spotlight) spotlightDTO {
	names := s.Names
	if names == nil {
		names = []string{}
	}
	return spotlightDTO{Title: s.Title, Value: s.Value, Names: names}
}

type overviewDTO struct {
	TotalMatches int                   `json:"total_matches"`
	TotalGoals   int                   `json:"total_goals"`
	PlayerCount  int                   `json:"player_count"`
	Spotlights   *spotlightsDTO        `json:"spotlights,omitempty"`
	Leaderboard  []leaderboardEntryDTO `json:"leaderboard"`
	Recent       []matchDTO            `json:"recent"`
	Degraded     bool                  `json:"degraded"`
}

func overviewToDTO(o usecase.Overview) overviewDTO {
	out := overviewDTO{
		TotalMatches: o.TotalMatches,
		TotalGoals:   o.TotalGoals,
		PlayerCount:  o.PlayerCount,
		Leaderboard:  leaderboardEntriesToDTO(o.Leaderboard),
		Recent:       matchesToDTO(o.Recent),
		Degraded:     o.Degraded,
	}
	if o.HasSpotlights {
		out.Spotlights = &spotlightsDTO{
			Commitment: spotlightToDTO(o.Spotlights.Commitment),
			Star:       spotlightToDTO(o.Spotlights.Star),
			Losses:     spotlightToDTO(o.Spotlights.Losses),
		}
	}
	return out
}

type importRowDTO struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	PlayerID string `json:"player_id,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

type importResultDTO struct {
	Rows    []importRowDTO `json:"rows"`
	Created int            `json:"created"`
	Updated int            `json:"updated"`
	Skipped int            `json:"skipped"`
	Failed  int            `json:"failed"`
}

func importResultToDTO(r usecase.ImportResult) importResultDTO {
	rows := make([]importRowDTO, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, importRowDTO{
			Index:    row.Index,
			Name:     row.Name,
			PlayerID: row.PlayerID,
			Status:   string(row.Status),
			Message:  row.Message,
		})
	}
	return importResultDTO{
		Rows:    rows,
		Created: r.Created,
		Updated: r.Updated,
		Skipped: r.Skipped,
		Failed:  r.Failed,
	}
}

type syncResultDTO struct {
	Roster          importResultDTO `json:"roster"`
	MatchesAppended int             `json:"matches_appended"`
	MatchesSkipped  int             `json:"matches_skipped"`
}
