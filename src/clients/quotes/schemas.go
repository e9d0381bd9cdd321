package quotes

type QuoteSchema struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

type GetQuotesResponse struct {
	Quotes []QuoteSchema `json:"quotes"`
}
