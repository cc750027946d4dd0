package services

import (
	"errors"
	"time"

	"creditsystem/apperrors"
	"creditsystem/models"
	"creditsystem/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCreditDTO представляет данные для создания кредитной заявки
type CreateCreditDTO struct {
	CreditValue           float64 `json:"creditValue" validate:"required,gt=0"`
	DayFirstOfInstallment string  `json:"dayFirstOfInstallment" validate:"required,datetime=2006-01-02"`
	NumberOfInstallments  int     `json:"numberOfInstallments" validate:"required,gt=0,max=48"`
	CustomerID            uint    `json:"customerId" validate:"required"`
}

// ToEntity конвертирует DTO в модель Credit.
// Кредитный код и статус назначаются здесь, до сохранения
func (dto CreateCreditDTO) ToEntity() (*models.Credit, error) {
	day, err := time.Parse("2006-01-02", dto.DayFirstOfInstallment)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{
			"dayFirstOfInstallment": "must be a date in format 2006-01-02",
		})
	}

	return &models.Credit{
		CreditCode:           uuid.NewString(),
		CreditValue:          dto.CreditValue,
		DayFirstInstallment:  day,
		NumberOfInstallments: dto.NumberOfInstallments,
		Status:               models.CreditStatusInProgress,
		CustomerID:           dto.CustomerID,
	}, nil
}

// CreditViewDTO представляет ответ с данными кредитной заявки
type CreditViewDTO struct {
	CreditCode          string  `json:"creditCode"`
	CreditValue         float64 `json:"creditValue"`
	NumberOfInstallment int     `json:"numberOfInstallment"`
	Status              string  `json:"status"`
	EmailCustomer       string  `json:"emailCustomer"`
	IncomeCustomer      float64 `json:"incomeCustomer"`
}

// NewCreditViewDTO конвертирует модель Credit в DTO
func NewCreditViewDTO(credit *models.Credit) CreditViewDTO {
	return CreditViewDTO{
		CreditCode:          credit.CreditCode,
		CreditValue:         credit.CreditValue,
		NumberOfInstallment: credit.NumberOfInstallments,
		Status:              string(credit.Status),
		EmailCustomer:       credit.Customer.Email,
		IncomeCustomer:      credit.Customer.Income,
	}
}

// CreditViewListDTO представляет краткие данные кредита в списке
type CreditViewListDTO struct {
	CreditCode           string  `json:"creditCode"`
	CreditValue          float64 `json:"creditValue"`
	NumberOfInstallments int     `json:"numberOfInstallments"`
	Status               string  `json:"status"`
}

// NewCreditViewListDTO конвертирует модель Credit в краткий DTO
func NewCreditViewListDTO(credit *models.Credit) CreditViewListDTO {
	return CreditViewListDTO{
		CreditCode:           credit.CreditCode,
		CreditValue:          credit.CreditValue,
		NumberOfInstallments: credit.NumberOfInstallments,
		Status:               string(credit.Status),
	}
}

// CreditService предоставляет методы для работы с кредитными заявками
type CreditService struct {
	db              *gorm.DB
	customerService *CustomerService
	email           *EmailService
	now             func() time.Time
}

// NewCreditService создает новый экземпляр CreditService
func NewCreditService(db *gorm.DB, customerService *CustomerService, email *EmailService) *CreditService {
	return &CreditService{
		db:              db,
		customerService: customerService,
		email:           email,
		now:             time.Now,
	}
}

// plusMonths прибавляет календарные месяцы. Если в целевом месяце меньше
// дней, дата ограничивается его последним днем (31 августа + 3 месяца =
// 30 ноября, а не 1 декабря)
func plusMonths(day time.Time, months int) time.Time {
	firstOfTarget := time.Date(day.Year(), day.Month()+time.Month(months), 1, 0, 0, 0, 0, day.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()

	d := day.Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, day.Location())
}

// validDayFirstInstallment проверяет, что дата первого платежа наступает
// строго раньше, чем через 3 календарных месяца от текущей даты.
// Граница ровно в 3 месяца отклоняется
func (s *CreditService) validDayFirstInstallment(day time.Time) bool {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return plusMonths(today, 3).After(day)
}

// Save валидирует дату первого платежа, находит клиента-владельца
// и сохраняет кредитную заявку
func (s *CreditService) Save(credit *models.Credit) (*models.Credit, error) {
	// Проверка даты выполняется до любого обращения к хранилищу
	if !s.validDayFirstInstallment(credit.DayFirstInstallment) {
		utils.GetMetrics().RecordCreditOperation("reject")
		return nil, apperrors.NewBusinessError("Invalid Date")
	}

	// Ошибка поиска клиента пробрасывается без трансляции
	customer, err := s.customerService.FindByID(credit.CustomerID)
	if err != nil {
		return nil, err
	}
	credit.Customer = *customer

	if err := s.db.Create(credit).Error; err != nil {
		return nil, err
	}

	utils.GetMetrics().RecordCreditOperation("create")

	// Сбой отправки уведомления не отменяет созданную заявку
	if s.email != nil {
		if err := s.email.SendCreditCreatedNotification(
			customer.Email, credit.CreditCode, credit.CreditValue, credit.NumberOfInstallments,
		); err != nil {
			utils.LogError("Failed to send credit notification to %s: %v", customer.Email, err)
		}
	}

	return credit, nil
}

// FindAllByCustomer возвращает все кредитные заявки клиента.
// Если заявок нет, возвращается пустой список
func (s *CreditService) FindAllByCustomer(customerID uint) ([]models.Credit, error) {
	credits := make([]models.Credit, 0)
	if err := s.db.Where("customer_id = ?", customerID).Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// FindByCreditCode ищет кредитную заявку по кредитному коду и проверяет,
// что она принадлежит указанному клиенту
func (s *CreditService) FindByCreditCode(customerID uint, creditCode string) (*models.Credit, error) {
	var credit models.Credit
	if err := s.db.Preload("Customer").Where("credit_code = ?", creditCode).First(&credit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBusinessError("Creditcode %s not found", creditCode)
		}
		return nil, err
	}

	if credit.CustomerID != customerID {
		utils.GetMetrics().RecordCreditOperation("mismatch")
		return nil, apperrors.NewAuthorizationError("Contact admin")
	}

	utils.GetMetrics().RecordCreditOperation("lookup")
	return &credit, nil
}
