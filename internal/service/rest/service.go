// Package restsvc реализует HTTP API поверх доменных репозиториев и сервиса
// сборки заказов. Слой только транслирует запросы и ошибки; бизнес-правила
// живут в internal/domain и internal/service/orders.
package restsvc

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
	"github.com/vladislavdragonenkov/orderflow/internal/service/orders"
)

// API связывает HTTP-маршруты с доменными операциями.
type API struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orderRepo domain.OrderRepository
	orders    *orders.Service
	logger    *log.Entry
}

// NewAPI конструирует API с зависимостями.
func NewAPI(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orderRepo domain.OrderRepository,
	ordersSvc *orders.Service,
	logger *log.Entry,
) *API {
	if logger == nil {
		logger = log.New().WithField("component", "rest-api")
	}
	return &API{
		customers: customers,
		products:  products,
		orderRepo: orderRepo,
		orders:    ordersSvc,
		logger:    logger,
	}
}

// Routes возвращает mux со всеми маршрутами API.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/customers", a.createCustomer)
	mux.HandleFunc("GET /api/customers", a.listCustomers)
	mux.HandleFunc("GET /api/customers/by-email", a.getCustomerByEmail)
	mux.HandleFunc("GET /api/customers/{id}", a.getCustomer)
	mux.HandleFunc("PUT /api/customers/{id}", a.updateCustomer)
	mux.HandleFunc("DELETE /api/customers/{id}", a.deleteCustomer)

	mux.HandleFunc("POST /api/products", a.createProduct)
	mux.HandleFunc("GET /api/products", a.listProducts)
	mux.HandleFunc("GET /api/products/by-sku", a.getProductBySKU)
	mux.HandleFunc("GET /api/products/{id}", a.getProduct)
	mux.HandleFunc("PUT /api/products/{id}", a.updateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", a.deleteProduct)

	mux.HandleFunc("POST /api/orders", a.createOrder)
	mux.HandleFunc("GET /api/orders", a.listOrders)
	mux.HandleFunc("GET /api/orders/{id}", a.getOrder)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
