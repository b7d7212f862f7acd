package models

import "time"

// Merchant представляет продавца с собственным каталогом и кошельком
type Merchant struct {
	ID        string // uuid
	Username  string
	Email     string
	PassHash  []byte
	Welcomed  bool // true после отправки приветственного письма
	CreatedAt time.Time
}
