package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/tuuze-market/internal/domain/models"
)

// State — состояние покупательской сессии.
type State string

const (
	StateBrowsing     State = "browsing"
	StateCartBuilding State = "cart_building"
	StateCheckingOut  State = "checking_out"
	StateCompleted    State = "completed"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoWallet — у продавца первого товара не зарегистрирован кошелёк
	ErrNoWallet = errors.New("merchant has no registered wallet")
	// ErrNotCheckingOut — колбэк виджета пришёл вне оформления заказа
	ErrNotCheckingOut = errors.New("session is not checking out")
)

// CatalogReader — то, что сессии нужно от API: каталог и адрес кошелька.
type CatalogReader interface {
	GetProducts(ctx context.Context) ([]*models.Product, error)
	GetWalletAddress(ctx context.Context, merchantID string) (string, error)
}

// DepositWidget — внешний платёжный виджет. Система только передаёт ему
// сумму и адрес; подтверждение расчёта не проверяется, завершение сессии
// целиком управляется колбэком виджета
type DepositWidget interface {
	Open(ctx context.Context, amount float64, walletAddress string) error
}

// Session — покупательская сессия: Browsing -> CartBuilding -> CheckingOut -> Completed.
type Session struct {
	log    *slog.Logger
	client CatalogReader
	widget DepositWidget
	cart   *Cart
	state  State
}

func NewSession(log *slog.Logger, client CatalogReader, widget DepositWidget) *Session {
	return &Session{
		log:    log,
		client: client,
		widget: widget,
		cart:   NewCart(),
		state:  StateBrowsing,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Cart() *Cart {
	return s.cart
}

// AddToCart кладёт товар в корзину и переводит сессию в CartBuilding.
func (s *Session) AddToCart(product *models.Product) {
	s.cart.Add(product)
	if s.state == StateBrowsing {
		s.state = StateCartBuilding
	}
}

// RemoveFromCart убирает позицию; пустая корзина возвращает сессию в Browsing.
func (s *Session) RemoveFromCart(productID string) {
	s.cart.Remove(productID)
	if s.cart.Empty() && s.state == StateCartBuilding {
		s.state = StateBrowsing
	}
}

// Checkout закрывает корзину и открывает внешний виджет, передавая ему общую
// сумму и адрес кошелька продавца первого товара. Предположение «один
// продавец на корзину»: при смешанной корзине весь платёж уйдёт владельцу
// первой позиции (см. DESIGN.md)
func (s *Session) Checkout(ctx context.Context) error {
	const op = "storefront.Session.Checkout"
	logger := s.log.With(slog.String("op", op))

	if s.cart.Empty() {
		return ErrEmptyCart
	}

	first := s.cart.Items()[0]
	address := first.Product.WalletAddress
	if address == "" {
		// в каталоге адреса не оказалось — спрашиваем реестр напрямую
		resolved, err := s.client.GetWalletAddress(ctx, first.Product.MerchantID)
		if err != nil {
			logger.Error("failed to resolve wallet", slog.Any("error", err))
			return fmt.Errorf("%s: failed to resolve wallet: %w", op, err)
		}
		address = resolved
	}

	total := s.cart.Total()
	if err := s.widget.Open(ctx, total, address); err != nil {
		logger.Error("failed to open deposit widget", slog.Any("error", err))
		return fmt.Errorf("%s: failed to open deposit widget: %w", op, err)
	}

	s.state = StateCheckingOut
	logger.Info("checkout started",
		slog.Float64("total", total),
		slog.String("wallet", address))
	return nil
}

// CompleteCheckout — колбэк успеха от виджета: корзина уничтожается,
// сессия переходит в Completed.
func (s *Session) CompleteCheckout() error {
	if s.state != StateCheckingOut {
		return ErrNotCheckingOut
	}
	s.cart.Clear()
	s.state = StateCompleted
	return nil
}

// FailCheckout — колбэк неуспеха: корзина сохраняется, покупатель
// возвращается к её наполнению.
func (s *Session) FailCheckout() error {
	if s.state != StateCheckingOut {
		return ErrNotCheckingOut
	}
	s.state = StateCartBuilding
	return nil
}
