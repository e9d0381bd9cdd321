package schemas

import "classtrade/src/models"

type LeaderboardScope string

const (
	ScopeGlobal LeaderboardScope = "global"
	ScopeClass  LeaderboardScope = "class"
)

type LeaderboardEntry struct {
	Rank       int         `json:"rank"`
	AccountID  string      `json:"accountId"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	TotalValue float64     `json:"totalValue"`
}

type LeaderboardResponse struct {
	Scope   LeaderboardScope   `json:"scope"`
	Entries []LeaderboardEntry `json:"entries"`
}
