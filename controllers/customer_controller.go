package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"creditsystem/apperrors"
	"creditsystem/database"
	"creditsystem/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// CustomerController обрабатывает запросы, связанные с клиентами
type CustomerController struct {
	customerService *services.CustomerService
	validator       *validator.Validate
}

// NewCustomerController создает новый экземпляр CustomerController
func NewCustomerController(db *database.Database) *CustomerController {
	return &CustomerController{
		customerService: services.NewCustomerService(db.DB),
		validator:       newValidator(),
	}
}

// CreateCustomer обрабатывает запрос на создание клиента
func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateCustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}

	// Валидируем DTO
	if err := c.validator.Struct(dto); err != nil {
		writeError(w, buildValidationError(err))
		return
	}

	// Создаем клиента
	customer, err := c.customerService.Save(dto.ToEntity())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, services.NewCustomerViewDTO(customer))
}

// GetCustomer обрабатывает запрос на получение клиента по ID
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из URL
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"id": "must be a positive integer"}))
		return
	}

	customer, err := c.customerService.FindByID(uint(id))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.NewCustomerViewDTO(customer))
}

// DeleteCustomer обрабатывает запрос на удаление клиента
func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из URL
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"id": "must be a positive integer"}))
		return
	}

	if err := c.customerService.Delete(uint(id)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateCustomer обрабатывает запрос на частичное обновление клиента
func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из параметра запроса
	id, err := strconv.ParseUint(r.URL.Query().Get("customerId"), 10, 32)
	if err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"customerId": "must be a positive integer"}))
		return
	}

	var dto services.UpdateCustomerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}

	// Валидируем DTO
	if err := c.validator.Struct(dto); err != nil {
		writeError(w, buildValidationError(err))
		return
	}

	customer, err := c.customerService.Update(uint(id), dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.NewCustomerViewDTO(customer))
}
