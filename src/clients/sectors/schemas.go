package sectors

type IndustrySchema struct {
	Symbol   string `json:"symbol"`
	Industry string `json:"industry"`
}

type GetIndustriesResponse struct {
	Industries []IndustrySchema `json:"industries"`
}
