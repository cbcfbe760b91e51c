package restsvc

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/orderflow/internal/domain"
)

// errorResponse — тело ответа об ошибке. Для "не найдено" сохраняются вид
// сущности и идентификатор, чтобы клиент видел виновника.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	ID    string `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError транслирует доменную ошибку в HTTP-статус.
// Вид ошибки и идентификатор сущности не теряются при трансляции.
func (a *API) writeDomainError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrProductRequired),
		errors.Is(err, domain.ErrQuantityInvalid),
		domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateItem):
		writeError(w, http.StatusConflict, err.Error())
	case domain.IsNotFound(err):
		nfe, _ := domain.AsNotFound(err)
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: nfe.Error(),
			Kind:  string(nfe.Kind),
			ID:    nfe.ID,
		})
	default:
		a.logger.WithError(err).WithField("operation", operation).Error("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
