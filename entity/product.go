package entity

type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Group   string  `json:"group"`
	Price   float64 `json:"price"`
	InStock int     `json:"in_stock"`
}

type Store struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Address  string  `json:"address"`
	Distance float64 `json:"distance_km"`
}
