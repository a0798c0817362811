package models

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type SearchResponse struct {
	Success       bool          `json:"success"`
	Flights       []FlightOffer `json:"flights"`
	ReturnFlights []FlightOffer `json:"returnFlights,omitempty"`
	Pagination    Pagination    `json:"pagination"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
