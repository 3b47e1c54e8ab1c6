package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/session"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUIDAndRole(ctx context.Context, uid string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, uid, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, f model.UserFilter) ([]*model.User, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, uid string, p model.ProfileUpdateRequest) error {
	args := m.Called(ctx, uid, p)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, uid string, newPassword string) error {
	args := m.Called(ctx, uid, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) SetAuthenticated(ctx context.Context, uid string, authenticated bool) error {
	args := m.Called(ctx, uid, authenticated)
	return args.Error(0)
}

func (m *MockUserRepository) ClearAddressRef(ctx context.Context, addressUID string) error {
	args := m.Called(ctx, addressUID)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockUserRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Create(ctx context.Context, a *model.Address) (*model.Address, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) GetByUID(ctx context.Context, uid string) (*model.Address, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, uid string, p model.AddressCreateRequest) error {
	args := m.Called(ctx, uid, p)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByUID(ctx context.Context, uid string) (*model.Category, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockCategoryRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) GetByUID(ctx context.Context, uid string) (*model.Item, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) List(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Update(ctx context.Context, uid string, p model.ItemUpdateRequest) error {
	args := m.Called(ctx, uid, p)
	return args.Error(0)
}

func (m *MockItemRepository) SetOnSale(ctx context.Context, uid string, onSale bool) error {
	args := m.Called(ctx, uid, onSale)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteByCategory(ctx context.Context, categoryUID string) ([]string, error) {
	args := m.Called(ctx, categoryUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockItemRepository) DeleteBySeller(ctx context.Context, sellerUID string) ([]string, error) {
	args := m.Called(ctx, sellerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUID(ctx context.Context, uid string) (*model.Order, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, f model.OrderFilter) ([]*model.Order, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateOfferPrice(ctx context.Context, uid string, price float64) error {
	args := m.Called(ctx, uid, price)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, uid string, status model.OrderStatus) error {
	args := m.Called(ctx, uid, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteByItemUIDs(ctx context.Context, itemUIDs []string) error {
	args := m.Called(ctx, itemUIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteByUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *MockOrderRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Transaction), args.Get(1).(int64), args.Error(2)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendAccountCredentials(ctx context.Context, recipient, name, password string) error {
	args := m.Called(ctx, recipient, name, password)
	return args.Error(0)
}

func (m *MockMailer) SendPurchaseRequestToSeller(ctx context.Context, recipient, itemName string, offerPrice float64) error {
	args := m.Called(ctx, recipient, itemName, offerPrice)
	return args.Error(0)
}

func (m *MockMailer) SendPurchaseRequestToBuyer(ctx context.Context, recipient, itemName string, offerPrice float64) error {
	args := m.Called(ctx, recipient, itemName, offerPrice)
	return args.Error(0)
}

func (m *MockMailer) SendApproval(ctx context.Context, recipient, itemName string) error {
	args := m.Called(ctx, recipient, itemName)
	return args.Error(0)
}

func (m *MockMailer) SendRejection(ctx context.Context, recipient, itemName string) error {
	args := m.Called(ctx, recipient, itemName)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(p session.Principal) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(token string) (*session.Principal, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Principal), args.Error(1)
}

func (m *MockSessionStore) Destroy(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
