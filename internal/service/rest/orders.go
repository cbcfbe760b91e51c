package restsvc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
	"github.com/vladislavdragonenkov/orderflow/internal/service/orders"
)

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []orderItemRequest `json:"items"`
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	items := make([]orders.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orders.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := a.orders.CreateOrder(r.Context(), orders.CreateOrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		a.writeDomainError(w, "CreateOrder", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": orderID})
}

// getOrder отдаёт проекцию заказа. Отсутствующий заказ — 404 по контракту
// HTTP, но внутри это легитимный "absent", а не ошибка сервиса.
func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	view, err := a.orders.GetOrder(r.Context(), id)
	if err != nil {
		a.writeDomainError(w, "GetOrder", err)
		return
	}
	if view == nil {
		a.writeDomainError(w, "GetOrder", domain.NewNotFoundError(domain.EntityOrder, id))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// listOrders поддерживает выборку по клиенту (?customer_id=) и по интервалу
// дат (?from=&to=, RFC3339).
func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		result []*domain.Order
		err    error
	)

	switch {
	case query.Get("customer_id") != "":
		result, err = a.orderRepo.GetByCustomerID(r.Context(), query.Get("customer_id"))
	case query.Get("from") != "" && query.Get("to") != "":
		var from, to time.Time
		from, err = time.Parse(time.RFC3339, query.Get("from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "from must be RFC3339")
			return
		}
		to, err = time.Parse(time.RFC3339, query.Get("to"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "to must be RFC3339")
			return
		}
		result, err = a.orderRepo.GetByDateRange(r.Context(), from, to)
	default:
		result, err = a.orderRepo.GetAll(r.Context())
	}
	if err != nil {
		a.writeDomainError(w, "ListOrders", err)
		return
	}

	summaries := make([]orderSummary, 0, len(result))
	for _, order := range result {
		summaries = append(summaries, toOrderSummary(order))
	}
	writeJSON(w, http.StatusOK, summaries)
}

// orderSummary — краткая форма заказа для списков; полная проекция с именами
// товаров доступна по GET /api/orders/{id}.
type orderSummary struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	OrderDate   time.Time `json:"order_date"`
	TotalAmount string    `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
}

func toOrderSummary(order *domain.Order) orderSummary {
	return orderSummary{
		ID:          order.ID(),
		CustomerID:  order.CustomerID(),
		OrderDate:   order.OrderDate(),
		TotalAmount: order.TotalAmount().String(),
		ItemCount:   len(order.Items()),
	}
}
