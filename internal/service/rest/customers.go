package restsvc

import (
	"encoding/json"
	"net/http"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

type customerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email}
}

func (a *API) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := domain.NewCustomer(req.Name, req.Email)
	if err != nil {
		a.writeDomainError(w, "CreateCustomer", err)
		return
	}

	if err := a.customers.Add(r.Context(), customer); err != nil {
		a.writeDomainError(w, "CreateCustomer", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": customer.ID})
}

func (a *API) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := a.customers.GetAll(r.Context())
	if err != nil {
		a.writeDomainError(w, "ListCustomers", err)
		return
	}

	result := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		result = append(result, toCustomerResponse(customer))
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) getCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	customer, err := a.customers.GetByID(r.Context(), id)
	if err != nil {
		a.writeDomainError(w, "GetCustomer", err)
		return
	}
	if customer == nil {
		a.writeDomainError(w, "GetCustomer", domain.NewNotFoundError(domain.EntityCustomer, id))
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*customer))
}

func (a *API) getCustomerByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	customer, err := a.customers.GetByEmail(r.Context(), email)
	if err != nil {
		a.writeDomainError(w, "GetCustomerByEmail", err)
		return
	}
	if customer == nil {
		a.writeDomainError(w, "GetCustomerByEmail", domain.NewNotFoundError(domain.EntityCustomer, email))
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(*customer))
}

func (a *API) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Пересобираем сущность через конструктор, чтобы инварианты проверялись
	// и на обновлении, затем возвращаем идентификатор из пути.
	customer, err := domain.NewCustomer(req.Name, req.Email)
	if err != nil {
		a.writeDomainError(w, "UpdateCustomer", err)
		return
	}
	customer.ID = id

	if err := a.customers.Update(r.Context(), customer); err != nil {
		a.writeDomainError(w, "UpdateCustomer", err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (a *API) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := a.customers.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.writeDomainError(w, "DeleteCustomer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
