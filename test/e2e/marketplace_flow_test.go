package e2e

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/internal/services"
	"github.com/ospteam/marketplace/internal/session"
	"github.com/ospteam/marketplace/pkg/pg"
	"github.com/ospteam/marketplace/pkg/redis"
	"github.com/ospteam/marketplace/test/fixtures"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB = pg.DB

// recordingMailer satisfies every notification interface the services need
// and records what would have been sent instead of talking to a provider.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) record(kind, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, kind+":"+recipient)
	return nil
}

func (m *recordingMailer) SendAccountCredentials(_ context.Context, recipient, _, _ string) error {
	return m.record("credentials", recipient)
}

func (m *recordingMailer) SendPurchaseRequestToSeller(_ context.Context, recipient, _ string, _ float64) error {
	return m.record("request_seller", recipient)
}

func (m *recordingMailer) SendPurchaseRequestToBuyer(_ context.Context, recipient, _ string, _ float64) error {
	return m.record("request_buyer", recipient)
}

func (m *recordingMailer) SendApproval(_ context.Context, recipient, _ string) error {
	return m.record("approval", recipient)
}

func (m *recordingMailer) SendRejection(_ context.Context, recipient, _ string) error {
	return m.record("rejection", recipient)
}

type TestEnvironment struct {
	DB              *pg.DB
	Redis           *miniredis.Miniredis
	Mailer          *recordingMailer
	Sessions        *session.Store
	UserRepo        *repository.UserRepository
	ItemRepo        *repository.ItemRepository
	OrderRepo       *repository.OrderRepository
	TransactionRepo *repository.TransactionRepository
	Accounts        *services.AccountService
	Auth            *services.AuthService
	Catalog         *services.CatalogService
	Orders          *services.OrderService
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.AddressEntity{},
		&repository.UserEntity{},
		&repository.CategoryEntity{},
		&repository.ItemEntity{},
		&repository.OrderEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &testDB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	redisAdapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	sessions := session.NewStore(redisAdapter, time.Hour)

	userRepo := repository.NewUserRepository(pgDB)
	addressRepo := repository.NewAddressRepository(pgDB)
	categoryRepo := repository.NewCategoryRepository(pgDB)
	itemRepo := repository.NewItemRepository(pgDB)
	orderRepo := repository.NewOrderRepository(pgDB)
	transactionRepo := repository.NewTransactionRepository(pgDB)

	return &TestEnvironment{
		DB:              pgDB,
		Redis:           mr,
		Mailer:          mailer,
		Sessions:        sessions,
		UserRepo:        userRepo,
		ItemRepo:        itemRepo,
		OrderRepo:       orderRepo,
		TransactionRepo: transactionRepo,
		Accounts:        services.NewAccountService(userRepo, addressRepo, itemRepo, orderRepo, mailer),
		Auth:            services.NewAuthService(userRepo, sessions),
		Catalog:         services.NewCatalogService(categoryRepo, itemRepo, orderRepo),
		Orders:          services.NewOrderService(orderRepo, itemRepo, userRepo, transactionRepo, mailer),
	}
}

func (env *TestEnvironment) Cleanup() {
	if env.Redis != nil {
		env.Redis.Close()
	}
}

// seedListing provisions a seller, a buyer, a category and one listed item.
func seedListing(t *testing.T, env *TestEnvironment, price float64) (seller, buyer *model.User, item *model.Item) {
	ctx := context.Background()

	seller, err := env.Accounts.Create(ctx, fixtures.TestSellerRequest)
	require.NoError(t, err)

	buyer, err = env.Accounts.Create(ctx, fixtures.TestBuyerRequest)
	require.NoError(t, err)

	category, err := env.Catalog.AddCategory(ctx, fixtures.NewTestCategoryRequest("Sports"))
	require.NoError(t, err)

	item, err = env.Catalog.AddItem(ctx, fixtures.NewTestItemRequest(seller.UID, category.UID, "Cricket Bat", price))
	require.NoError(t, err)
	require.True(t, item.OnSale)

	return seller, buyer, item
}

func TestE2E_PurchaseHappyPath(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	seller, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 80)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 80.0, order.OfferPrice)
	assert.Equal(t, seller.UID, order.SellerUID)

	// raising a request takes the item off sale
	got, err := env.ItemRepo.GetByUID(ctx, item.UID)
	require.NoError(t, err)
	assert.False(t, got.OnSale)

	err = env.Orders.UpdateOrderStatus(ctx, order.UID, model.OrderStatusAccepted)
	require.NoError(t, err)

	txn, err := env.Orders.Payment(ctx, buyer.UID, order.UID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, txn.OfferPrice)
	assert.Equal(t, "Cricket Bat", txn.ItemName)
	assert.Equal(t, buyer.Name, txn.BuyerName)
	assert.Equal(t, seller.Name, txn.SellerName)

	// order and item are gone once paid
	_, err = env.Orders.GetOrder(ctx, order.UID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = env.ItemRepo.GetByUID(ctx, item.UID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	txns, total, err := env.Orders.ListTransactions(ctx, model.TransactionFilter{BuyerUID: &buyer.UID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, txn.UID, txns[0].UID)

	assert.Contains(t, env.Mailer.sent, "request_seller:"+seller.Email)
	assert.Contains(t, env.Mailer.sent, "request_buyer:"+buyer.Email)
	assert.Contains(t, env.Mailer.sent, "approval:"+buyer.Email)
}

func TestE2E_PurchaseRejection(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	_, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 80)
	require.NoError(t, err)

	err = env.Orders.UpdateOrderStatus(ctx, order.UID, model.OrderStatusRejected)
	require.NoError(t, err)

	// rejection deletes the order and puts the item back on sale
	_, err = env.Orders.GetOrder(ctx, order.UID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	got, err := env.ItemRepo.GetByUID(ctx, item.UID)
	require.NoError(t, err)
	assert.True(t, got.OnSale)

	_, total, err := env.Orders.ListTransactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.Contains(t, env.Mailer.sent, "rejection:"+buyer.Email)
}

func TestE2E_Negotiation(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	_, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 60)
	require.NoError(t, err)

	err = env.Orders.Negotiate(ctx, order.UID, 75)
	require.NoError(t, err)

	got, err := env.Orders.GetOrder(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.OfferPrice)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	// a negative counter-offer changes nothing
	err = env.Orders.Negotiate(ctx, order.UID, -5)
	assert.ErrorIs(t, err, services.ErrInvalidOffer)

	got, err = env.Orders.GetOrder(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.OfferPrice)
}

func TestE2E_PaymentRequiresAcceptance(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	_, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 80)
	require.NoError(t, err)

	txn, err := env.Orders.Payment(ctx, buyer.UID, order.UID)
	assert.ErrorIs(t, err, services.ErrOrderNotApproved)
	assert.Nil(t, txn)

	// order and item are untouched by the failed payment
	got, err := env.Orders.GetOrder(ctx, order.UID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)

	_, err = env.ItemRepo.GetByUID(ctx, item.UID)
	require.NoError(t, err)

	_, total, err := env.Orders.ListTransactions(ctx, model.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestE2E_CategoryDeleteCascades(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	_, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 80)
	require.NoError(t, err)

	err = env.Catalog.DeleteCategory(ctx, item.CategoryUID)
	require.NoError(t, err)

	_, err = env.ItemRepo.GetByUID(ctx, item.UID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	_, err = env.OrderRepo.GetByUID(ctx, order.UID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestE2E_SellerDeleteCascades(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	seller, buyer, item := seedListing(t, env, 100)

	order, err := env.Orders.RaisePurchaseRequest(ctx, buyer.UID, item.UID, 80)
	require.NoError(t, err)

	err = env.Accounts.DeleteAccount(ctx, seller.UID, model.RoleSeller)
	require.NoError(t, err)

	_, err = env.Accounts.Get(ctx, seller.UID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = env.ItemRepo.GetByUID(ctx, item.UID)
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	_, err = env.OrderRepo.GetByUID(ctx, order.UID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	// the buyer is untouched
	_, err = env.Accounts.Get(ctx, buyer.UID)
	require.NoError(t, err)
}

func TestE2E_AddressDeleteNullifiesReference(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	buyer, err := env.Accounts.Create(ctx, fixtures.TestBuyerRequest)
	require.NoError(t, err)
	require.NotNil(t, buyer.AddressUID)

	// the address can be rewritten in place first
	updated := fixtures.TestAddress
	updated.Street = "Residency Road"
	err = env.Accounts.ChangeAddress(ctx, buyer.UID, updated)
	require.NoError(t, err)

	err = env.Accounts.DeleteAddress(ctx, buyer.UID)
	require.NoError(t, err)

	got, err := env.Accounts.Get(ctx, buyer.UID)
	require.NoError(t, err)
	assert.Nil(t, got.AddressUID)
}

func TestE2E_SignInSignOut(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	buyer, err := env.Accounts.Create(ctx, fixtures.TestBuyerRequest)
	require.NoError(t, err)

	token, principal, err := env.Auth.SignIn(ctx, buyer.UID, fixtures.TestBuyerRequest.Password)
	require.NoError(t, err)
	assert.Equal(t, buyer.UID, principal.UserUID)
	assert.Equal(t, model.RoleBuyer, principal.Role)

	resolved, err := env.Auth.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, buyer.UID, resolved.UserUID)

	err = env.Auth.SignOut(ctx, token)
	require.NoError(t, err)

	_, err = env.Auth.Resolve(token)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// wrong password never opens a session
	_, _, err = env.Auth.SignIn(ctx, buyer.UID, "not-the-password")
	assert.ErrorIs(t, err, services.ErrWrongPassword)
}

func TestE2E_AccountCreationSendsCredentials(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()
	manager, err := env.Accounts.Create(ctx, fixtures.NewTestManagerRequest())
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, manager.Role)

	assert.Contains(t, env.Mailer.sent, "credentials:"+manager.Email)
}
