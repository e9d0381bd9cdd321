package schemas

type AddStudentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StudentResponse struct {
	AccountID string  `json:"accountId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Cash      float64 `json:"cash"`
}

type AdjustCashRequest struct {
	Delta float64 `json:"delta"`
}

type AdjustCashResponse struct {
	AccountID string  `json:"accountId"`
	Cash      float64 `json:"cash"`
}

type UpdateCredentialsRequest struct {
	Password string `json:"password"`
}
