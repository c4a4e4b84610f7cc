package pos

import "errors"

// Semua error di sini recoverable: operasi ditolak, state tidak berubah.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingReason     = errors.New("missing reason")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCartNotEmpty      = errors.New("cart is not empty")
	ErrDrawerClosed      = errors.New("drawer is closed")
	ErrDrawerOpen        = errors.New("drawer is already open")
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
)
