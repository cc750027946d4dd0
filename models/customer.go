package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Address представляет адрес клиента (встраивается в Customer)
type Address struct {
	ZipCode string `gorm:"column:zip_code;not null;size:20"`
	Street  string `gorm:"column:street;not null;size:100"`
}

// Customer представляет клиента кредитной системы
type Customer struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	FirstName string    `gorm:"column:first_name;not null;size:50"`
	LastName  string    `gorm:"column:last_name;not null;size:50"`
	Cpf       string    `gorm:"column:cpf;unique;not null;size:11;index"`
	Email     string    `gorm:"column:email;unique;not null;size:100;index"`
	Password  string    `gorm:"column:password;not null;size:100"`
	Income    float64   `gorm:"column:income;not null"`
	Address   Address   `gorm:"embedded"`
	Credits   []Credit  `gorm:"foreignKey:CustomerID"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate хук для валидации перед созданием
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if len(c.FirstName) < 1 || len(c.FirstName) > 50 {
		return errors.New("first name must be between 1 and 50 characters")
	}
	if len(c.LastName) < 1 || len(c.LastName) > 50 {
		return errors.New("last name must be between 1 and 50 characters")
	}
	if len(c.Cpf) != 11 {
		return errors.New("cpf must be exactly 11 characters")
	}
	if c.Income < 0 {
		return errors.New("income must not be negative")
	}
	return nil
}
