package models

// Product представляет позицию каталога, принадлежащую ровно одному продавцу
type Product struct {
	ID            string  `json:"id"`
	MerchantID    string  `json:"merchant_id"`
	ImageURL      string  `json:"imageurl"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	WalletAddress string  `json:"walletaddressed,omitempty"` // адрес кошелька владельца; заполняется через JOIN с таблицей wallets
}
