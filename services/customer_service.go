package services

import (
	"errors"

	"creditsystem/apperrors"
	"creditsystem/models"
	"creditsystem/utils"
	"gorm.io/gorm"
)

// CreateCustomerDTO представляет данные для создания клиента
type CreateCustomerDTO struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=50"`
	Cpf       string  `json:"cpf" validate:"required,len=11,numeric"`
	Email     string  `json:"email" validate:"required,email"`
	Income    float64 `json:"income" validate:"gte=0"`
	Password  string  `json:"password" validate:"required"`
	ZipCode   string  `json:"zipCode" validate:"required"`
	Street    string  `json:"street" validate:"required"`
}

// ToEntity конвертирует DTO в модель Customer
func (dto CreateCustomerDTO) ToEntity() *models.Customer {
	return &models.Customer{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Cpf:       dto.Cpf,
		Email:     dto.Email,
		Income:    dto.Income,
		Password:  dto.Password,
		Address: models.Address{
			ZipCode: dto.ZipCode,
			Street:  dto.Street,
		},
	}
}

// UpdateCustomerDTO представляет данные для частичного обновления клиента
type UpdateCustomerDTO struct {
	FirstName *string  `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string  `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Income    *float64 `json:"income,omitempty" validate:"omitempty,gte=0"`
	ZipCode   *string  `json:"zipCode,omitempty"`
	Street    *string  `json:"street,omitempty"`
}

// CustomerViewDTO представляет ответ с данными клиента (без пароля)
type CustomerViewDTO struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Cpf       string  `json:"cpf"`
	Email     string  `json:"email"`
	Income    float64 `json:"income"`
	ZipCode   string  `json:"zipCode"`
	Street    string  `json:"street"`
}

// NewCustomerViewDTO конвертирует модель Customer в DTO
func NewCustomerViewDTO(customer *models.Customer) CustomerViewDTO {
	return CustomerViewDTO{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Cpf:       customer.Cpf,
		Email:     customer.Email,
		Income:    customer.Income,
		ZipCode:   customer.Address.ZipCode,
		Street:    customer.Address.Street,
	}
}

// CustomerService предоставляет методы для работы с клиентами
type CustomerService struct {
	db *gorm.DB
}

// NewCustomerService создает новый экземпляр CustomerService
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// Save сохраняет клиента (создание или полное обновление)
func (s *CustomerService) Save(customer *models.Customer) (*models.Customer, error) {
	isNew := customer.ID == 0

	if err := s.db.Save(customer).Error; err != nil {
		// Нарушение уникальности cpf или email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflictError("unique constraint", err.Error())
		}
		return nil, err
	}

	if isNew {
		utils.GetMetrics().RecordCustomerOperation("create")
	}
	return customer, nil
}

// FindByID ищет клиента по ID
func (s *CustomerService) FindByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBusinessError("ID %d not found", id)
		}
		return nil, err
	}
	return &customer, nil
}

// Update выполняет частичное обновление полей клиента
func (s *CustomerService) Update(id uint, dto UpdateCustomerDTO) (*models.Customer, error) {
	customer, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if dto.FirstName != nil {
		customer.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		customer.LastName = *dto.LastName
	}
	if dto.Income != nil {
		customer.Income = *dto.Income
	}
	if dto.ZipCode != nil {
		customer.Address.ZipCode = *dto.ZipCode
	}
	if dto.Street != nil {
		customer.Address.Street = *dto.Street
	}

	return s.Save(customer)
}

// Delete удаляет клиента по ID.
// Связанные кредиты не затрагиваются
func (s *CustomerService) Delete(id uint) error {
	customer, err := s.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(customer).Error; err != nil {
		return err
	}

	utils.GetMetrics().RecordCustomerOperation("delete")
	return nil
}
