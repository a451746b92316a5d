package entity

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Tier  string `json:"tier"`
}

// Transaction is a past purchase from the static catalog. The storekeeper
// journey uses it to find which customer bought a given product.
type Transaction struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	CustomerID string `json:"customer_id"`
	Date       string `json:"date"`
}
