package model

// FeedBar is one daily bar as served by the time-series feed API.
type FeedBar struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type FeedBarsResponse struct {
	Symbol string    `json:"symbol"`
	Bars   []FeedBar `json:"bars"`
}

type FeedErrorResponse struct {
	Message string `json:"message"`
}
