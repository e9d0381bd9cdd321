package schemas

type EvaluateAchievementsResponse struct {
	AccountID       string   `json:"accountId"`
	NewAchievements []string `json:"newAchievements"`
	Achievements    []string `json:"achievements"`
}
