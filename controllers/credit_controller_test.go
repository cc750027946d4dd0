package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"creditsystem/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func creditRequestBody(customerID int, dayFirstOfInstallment time.Time) map[string]interface{} {
	return map[string]interface{}{
		"creditValue":           7500.0,
		"dayFirstOfInstallment": dayFirstOfInstallment.Format("2006-01-02"),
		"numberOfInstallments":  6,
		"customerId":            customerID,
	}
}

// createTestCustomer создает клиента через API и возвращает его ID
func createTestCustomer(t *testing.T, router *mux.Router) int {
	t.Helper()

	rr := doRequest(router, "POST", "/api/customers", customerRequestBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("setup customer create failed: %s", rr.Body.String())
	}
	var view map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode customer response: %v", err)
	}
	return int(view["id"].(float64))
}

func TestCreateCredit(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	rr := doRequest(router, "POST", "/api/credits",
		creditRequestBody(customerID, time.Now().AddDate(0, 0, 30)))

	if rr.Code != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s",
			rr.Code, http.StatusCreated, rr.Body.String())
	}

	var view map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if view["creditCode"] == nil || view["creditCode"] == "" {
		t.Error("expected generated creditCode")
	}
	if view["creditValue"].(float64) != 7500.0 {
		t.Errorf("unexpected creditValue: got %v want 7500.0", view["creditValue"])
	}
	if int(view["numberOfInstallment"].(float64)) != 6 {
		t.Errorf("unexpected numberOfInstallment: got %v want 6", view["numberOfInstallment"])
	}
	if view["status"] != "IN_PROGRESS" {
		t.Errorf("unexpected status: got %v want IN_PROGRESS", view["status"])
	}
	if view["emailCustomer"] != "camila@email.com" {
		t.Errorf("unexpected emailCustomer: got %v", view["emailCustomer"])
	}
	if view["incomeCustomer"].(float64) != 1000.0 {
		t.Errorf("unexpected incomeCustomer: got %v", view["incomeCustomer"])
	}
}

func TestCreateCreditInvalidDate(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	// Дата первого платежа за пределами окна в 3 месяца
	rr := doRequest(router, "POST", "/api/credits",
		creditRequestBody(customerID, time.Now().AddDate(0, 3, 1)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	var details ExceptionDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if details.Title != titleBadRequest {
		t.Errorf("unexpected title: got %q want %q", details.Title, titleBadRequest)
	}
	if details.Exception != "creditsystem/apperrors.BusinessError" {
		t.Errorf("unexpected exception kind: got %q", details.Exception)
	}
	if details.Details["cause"] != "Invalid Date" {
		t.Errorf("unexpected cause: got %q want %q", details.Details["cause"], "Invalid Date")
	}
}

func TestCreateCreditNonexistentCustomer(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doRequest(router, "POST", "/api/credits",
		creditRequestBody(99, time.Now().AddDate(0, 0, 30)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	var details ExceptionDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if details.Exception != "creditsystem/apperrors.BusinessError" {
		t.Errorf("unexpected exception kind: got %q", details.Exception)
	}
	if details.Details["cause"] != "ID 99 not found" {
		t.Errorf("unexpected cause: got %q", details.Details["cause"])
	}
}

func TestCreateCreditTooManyInstallments(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	body := creditRequestBody(customerID, time.Now().AddDate(0, 0, 30))
	body["numberOfInstallments"] = 49

	rr := doRequest(router, "POST", "/api/credits", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	var details ExceptionDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := details.Details["numberOfInstallments"]; !ok {
		t.Error("expected validation message for numberOfInstallments")
	}
}

func TestGetCreditsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	rr := doRequest(router, "GET", "/api/credits?customerId="+itoa(customerID), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var list []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if list == nil {
		t.Fatal("expected empty list, got null")
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d items", len(list))
	}
}

func TestGetCreditsScopedToCustomer(t *testing.T) {
	router, _ := newTestRouter(t)
	firstID := createTestCustomer(t, router)

	otherBody := customerRequestBody()
	otherBody["cpf"] = "12345678901"
	otherBody["email"] = "other@email.com"
	created := doRequest(router, "POST", "/api/customers", otherBody)
	var otherView map[string]interface{}
	json.Unmarshal(created.Body.Bytes(), &otherView)
	secondID := int(otherView["id"].(float64))

	day := time.Now().AddDate(0, 0, 30)
	for i := 0; i < 2; i++ {
		if rr := doRequest(router, "POST", "/api/credits", creditRequestBody(firstID, day)); rr.Code != http.StatusCreated {
			t.Fatalf("setup credit create failed: %s", rr.Body.String())
		}
	}
	if rr := doRequest(router, "POST", "/api/credits", creditRequestBody(secondID, day)); rr.Code != http.StatusCreated {
		t.Fatalf("setup credit create failed: %s", rr.Body.String())
	}

	rr := doRequest(router, "GET", "/api/credits?customerId="+itoa(firstID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var list []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 credits, got %d", len(list))
	}
	for _, item := range list {
		if item["status"] != "IN_PROGRESS" {
			t.Errorf("unexpected status in list view: got %v", item["status"])
		}
		if item["creditCode"] == nil || item["creditCode"] == "" {
			t.Error("expected creditCode in list view")
		}
	}
}

func TestGetCreditByCode(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	created := doRequest(router, "POST", "/api/credits",
		creditRequestBody(customerID, time.Now().AddDate(0, 0, 30)))
	var createdView map[string]interface{}
	json.Unmarshal(created.Body.Bytes(), &createdView)
	creditCode := createdView["creditCode"].(string)

	rr := doRequest(router, "GET", "/api/credits/"+creditCode+"?customerId="+itoa(customerID), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s",
			rr.Code, http.StatusOK, rr.Body.String())
	}

	var view map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if view["creditCode"] != creditCode {
		t.Errorf("unexpected creditCode: got %v want %v", view["creditCode"], creditCode)
	}
	if view["emailCustomer"] != "camila@email.com" {
		t.Errorf("unexpected emailCustomer: got %v", view["emailCustomer"])
	}
}

func TestGetCreditByCodeNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	unknownCode := uuid.NewString()
	rr := doRequest(router, "GET", "/api/credits/"+unknownCode+"?customerId="+itoa(customerID), nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}

	var details ExceptionDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if details.Details["cause"] != "Creditcode "+unknownCode+" not found" {
		t.Errorf("unexpected cause: got %q", details.Details["cause"])
	}
}

func TestGetCreditByCodeOwnershipMismatch(t *testing.T) {
	router, db := newTestRouter(t)
	customerID := createTestCustomer(t, router)

	created := doRequest(router, "POST", "/api/credits",
		creditRequestBody(customerID, time.Now().AddDate(0, 0, 30)))
	var createdView map[string]interface{}
	json.Unmarshal(created.Body.Bytes(), &createdView)
	creditCode := createdView["creditCode"].(string)

	// Запрашиваем кредит от имени другого клиента
	rr := doRequest(router, "GET", "/api/credits/"+creditCode+"?customerId="+itoa(customerID+1), nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusInternalServerError)
	}

	var details ExceptionDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &details); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if details.Title != titleServerError {
		t.Errorf("unexpected title: got %q want %q", details.Title, titleServerError)
	}
	if details.Details["cause"] != "Contact admin" {
		t.Errorf("unexpected cause: got %q", details.Details["cause"])
	}

	// Кредит остается на месте и принадлежит исходному клиенту
	var credit models.Credit
	if err := db.Where("credit_code = ?", creditCode).First(&credit).Error; err != nil {
		t.Fatalf("credit disappeared: %v", err)
	}
	if credit.CustomerID != uint(customerID) {
		t.Errorf("unexpected owner: got %v want %v", credit.CustomerID, customerID)
	}
}
