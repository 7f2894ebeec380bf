package requestRepo

import (
	"errors"

	"churchapp/models"
)

var (
	// ErrNotFound is returned when no request or account matches.
	ErrNotFound = errors.New("account request not found")
	// ErrAlreadyApproved is returned when approving a request twice.
	ErrAlreadyApproved = errors.New("account request already approved")
)

// RequestRepository defines data access for the account approval queue and
// the accounts created from it.
type RequestRepository interface {
	List() ([]models.AccountRequest, error)
	GetByID(id string) (*models.AccountRequest, error)
	Approve(id string) error
	Delete(id string) error

	CreateAccount(account *models.Account) error
	GetAccountByLoginID(loginID string) (*models.Account, error)
}
