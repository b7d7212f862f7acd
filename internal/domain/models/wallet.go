package models

// Wallet — единственный платёжный адрес, привязанный к продавцу.
// Значение Address уникально на весь процесс: два продавца не могут
// зарегистрировать один и тот же адрес
type Wallet struct {
	ID         string `json:"id"`
	MerchantID string `json:"merchant_id"`
	Address    string `json:"wallet_address"`
}
