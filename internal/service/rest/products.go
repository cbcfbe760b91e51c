package restsvc

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

type productRequest struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type productResponse struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price}
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := domain.NewProduct(req.SKU, req.Name, req.Price)
	if err != nil {
		a.writeDomainError(w, "CreateProduct", err)
		return
	}

	if err := a.products.Add(r.Context(), product); err != nil {
		a.writeDomainError(w, "CreateProduct", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": product.ID})
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.products.GetAll(r.Context())
	if err != nil {
		a.writeDomainError(w, "ListProducts", err)
		return
	}

	result := make([]productResponse, 0, len(products))
	for _, product := range products {
		result = append(result, toProductResponse(product))
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := a.products.GetByID(r.Context(), id)
	if err != nil {
		a.writeDomainError(w, "GetProduct", err)
		return
	}
	if product == nil {
		a.writeDomainError(w, "GetProduct", domain.NewNotFoundError(domain.EntityProduct, id))
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*product))
}

func (a *API) getProductBySKU(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	if sku == "" {
		writeError(w, http.StatusBadRequest, "sku query parameter is required")
		return
	}

	product, err := a.products.GetBySKU(r.Context(), sku)
	if err != nil {
		a.writeDomainError(w, "GetProductBySKU", err)
		return
	}
	if product == nil {
		a.writeDomainError(w, "GetProductBySKU", domain.NewNotFoundError(domain.EntityProduct, sku))
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*product))
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := domain.NewProduct(req.SKU, req.Name, req.Price)
	if err != nil {
		a.writeDomainError(w, "UpdateProduct", err)
		return
	}
	product.ID = id

	if err := a.products.Update(r.Context(), product); err != nil {
		a.writeDomainError(w, "UpdateProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.writeDomainError(w, "DeleteProduct", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
