package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

var (
	// ErrNotLoggedIn — операция требует действующей сессии
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNameRequired    = errors.New("product name is required")
	ErrPriceInvalid    = errors.New("price must be positive")
	ErrQuantityInvalid = errors.New("quantity must be positive")
	ErrImageRequired   = errors.New("product image is required")
)

// AssetUploader — внешний хостинг изображений. Принимает содержимое файла,
// возвращает публичный URL
type AssetUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// ProductForm — заполненная форма создания товара до загрузки изображения.
type ProductForm struct {
	Name        string
	Description string
	Category    string
	Quantity    int
	Price       float64
	ImageName   string
	ImageData   []byte
}

// Validate повторяет клиентскую валидацию формы: непустое имя, положительные
// цена и количество, выбранное изображение.
func (f *ProductForm) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if f.Price <= 0 {
		return ErrPriceInvalid
	}
	if f.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	if len(f.ImageData) == 0 {
		return ErrImageRequired
	}
	return nil
}

// Session — сессия консоли продавца. Токен записывается при входе, очищается
// при выходе и передаётся явно в каждый исходящий запрос — общих мутируемых
// заголовков у клиента нет
type Session struct {
	log        *slog.Logger
	client     *Client
	uploader   AssetUploader
	token      string
	merchantID string
}

func NewSession(log *slog.Logger, client *Client, uploader AssetUploader) *Session {
	return &Session{
		log:      log,
		client:   client,
		uploader: uploader,
	}
}

// Login аутентифицирует продавца и сохраняет токен на время сессии.
func (s *Session) Login(ctx context.Context, email, password string) error {
	const op = "console.Session.Login"

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.token = token
	s.log.Info("merchant logged in", slog.String("op", op))
	return nil
}

// SetMerchantID запоминает идентификатор продавца для операций,
// где сервер ждёт его в теле запроса.
func (s *Session) SetMerchantID(id string) {
	s.merchantID = id
}

// Logout очищает сохранённый токен.
func (s *Session) Logout() {
	s.token = ""
	s.merchantID = ""
}

func (s *Session) LoggedIn() bool {
	return s.token != ""
}

// CreateProduct выполняет полный поток создания товара: локальная валидация
// формы, загрузка изображения на внешний хостинг, отправка позиции каталога
// с полученным URL. Два последовательных сетевых вызова без компенсации:
// если отправка каталога падает после успешной загрузки, изображение
// остаётся на хостинге неиспользуемым
func (s *Session) CreateProduct(ctx context.Context, form *ProductForm) error {
	const op = "console.Session.CreateProduct"
	logger := s.log.With(slog.String("op", op))

	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := form.Validate(); err != nil {
		logger.Warn("form validation failed", slog.Any("error", err))
		return err
	}

	imageURL, err := s.uploader.Upload(ctx, form.ImageName, form.ImageData)
	if err != nil {
		logger.Error("image upload failed", slog.Any("error", err))
		return fmt.Errorf("%s: image upload failed: %w", op, err)
	}

	product := &models.Product{
		MerchantID:  s.merchantID,
		Name:        form.Name,
		Description: form.Description,
		ImageURL:    imageURL,
		Category:    form.Category,
		Quantity:    form.Quantity,
		Price:       form.Price,
	}
	if err := s.client.AddProduct(ctx, s.token, product); err != nil {
		logger.Error("product submit failed", slog.Any("error", err))
		return fmt.Errorf("%s: product submit failed: %w", op, err)
	}

	logger.Info("product created")
	return nil
}

// MyProducts возвращает каталог текущего продавца.
func (s *Session) MyProducts(ctx context.Context) ([]*models.Product, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return s.client.MyProducts(ctx, s.token)
}

// UpdateProduct обновляет позицию каталога.
func (s *Session) UpdateProduct(ctx context.Context, product *models.Product) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return s.client.UpdateProduct(ctx, s.token, product)
}

// DeleteProduct удаляет позицию каталога.
func (s *Session) DeleteProduct(ctx context.Context, productID string) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return s.client.DeleteProduct(ctx, s.token, productID)
}

// RegisterWallet привязывает платёжный адрес к продавцу.
func (s *Session) RegisterWallet(ctx context.Context, address string) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	return s.client.SaveWallet(ctx, s.token, s.merchantID, address)
}
