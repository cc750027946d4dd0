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

// CreditController обрабатывает запросы, связанные с кредитными заявками
type CreditController struct {
	creditService *services.CreditService
	validator     *validator.Validate
}

// NewCreditController создает новый экземпляр CreditController
func NewCreditController(db *database.Database, email *services.EmailService) *CreditController {
	customerService := services.NewCustomerService(db.DB)
	return &CreditController{
		creditService: services.NewCreditService(db.DB, customerService, email),
		validator:     newValidator(),
	}
}

// CreateCredit обрабатывает запрос на создание кредитной заявки
func (c *CreditController) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateCreditDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"body": "invalid request body"}))
		return
	}

	// Валидируем DTO
	if err := c.validator.Struct(dto); err != nil {
		writeError(w, buildValidationError(err))
		return
	}

	credit, err := dto.ToEntity()
	if err != nil {
		writeError(w, err)
		return
	}

	// Создаем кредитную заявку
	credit, err = c.creditService.Save(credit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, services.NewCreditViewDTO(credit))
}

// GetCredits обрабатывает запрос на получение списка кредитных заявок клиента
func (c *CreditController) GetCredits(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из параметра запроса
	customerID, err := strconv.ParseUint(r.URL.Query().Get("customerId"), 10, 32)
	if err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"customerId": "must be a positive integer"}))
		return
	}

	credits, err := c.creditService.FindAllByCustomer(uint(customerID))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]services.CreditViewListDTO, 0, len(credits))
	for i := range credits {
		views = append(views, services.NewCreditViewListDTO(&credits[i]))
	}

	writeJSON(w, http.StatusOK, views)
}

// GetCredit обрабатывает запрос на получение кредитной заявки по кредитному коду
func (c *CreditController) GetCredit(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из параметра запроса
	customerID, err := strconv.ParseUint(r.URL.Query().Get("customerId"), 10, 32)
	if err != nil {
		writeError(w, apperrors.NewValidationError(map[string]string{"customerId": "must be a positive integer"}))
		return
	}

	// Получаем кредитный код из URL
	vars := mux.Vars(r)
	creditCode := vars["creditCode"]

	credit, err := c.creditService.FindByCreditCode(uint(customerID), creditCode)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, services.NewCreditViewDTO(credit))
}
