package models

import "time"

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Tournament is a joinable match listing.
type Tournament struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	GameName       string    `json:"game_name"`
	EntryFee       int64     `json:"entry_fee"`
	PrizePool      int64     `json:"prize_pool"`
	MaxPlayers     int       `json:"max_players"`
	CurrentPlayers int       `json:"current_players"`
	StartTime      time.Time `json:"start_time"`
	Status         Status    `json:"status"`
	Description    string    `json:"description,omitempty"`
	Rules          string    `json:"rules,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MatchPlayer is a joined participant.
type MatchPlayer struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	IGN      string    `json:"ign"`
	JoinedAt time.Time `json:"joined_at"`
}

// Match is a tournament with its participants.
type Match struct {
	Tournament
	Players []MatchPlayer `json:"players"`
}

// WinningType classifies a payout.
type WinningType string

const (
	WinFirstPlace    WinningType = "first_place"
	WinKillLeader    WinningType = "kill_leader"
	WinParticipation WinningType = "participation"
)

// MatchResult is one player's outcome in a completed match.
type MatchResult struct {
	UserID      string      `json:"user_id"`
	Username    string      `json:"username"`
	IGN         string      `json:"ign"`
	Position    int         `json:"position"`
	Kills       int         `json:"kills,omitempty"`
	WinningType WinningType `json:"winning_type"`
	Prize       int64       `json:"prize"`
}

// MatchHistory is one entry of a player's match record.
type MatchHistory struct {
	MatchID    string    `json:"match_id"`
	MatchTitle string    `json:"match_title"`
	GameName   string    `json:"game_name"`
	EntryFee   int64     `json:"entry_fee"`
	Position   *int      `json:"position,omitempty"`
	Prize      int64     `json:"prize"`
	Status     string    `json:"status"`
	PlayedAt   time.Time `json:"played_at"`
}

// LeaderboardEntry ranks players by winnings.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	IGN           string `json:"ign"`
	TotalWinnings int64  `json:"total_winnings"`
	MatchesWon    int    `json:"matches_won"`
}
