package models

import (
	"time"
)

// Credit представляет кредитную заявку клиента
type Credit struct {
	ID                   uint         `gorm:"primaryKey;autoIncrement"`
	CreditCode           string       `gorm:"column:credit_code;unique;not null;size:36;index"`
	CreditValue          float64      `gorm:"column:credit_value;not null"`
	DayFirstInstallment  time.Time    `gorm:"column:day_first_installment;not null"`
	NumberOfInstallments int          `gorm:"column:number_of_installments;not null"`
	Status               CreditStatus `gorm:"column:status;type:varchar(20);not null;default:'IN_PROGRESS'"`
	Customer             Customer     `gorm:"foreignKey:CustomerID"`
	CustomerID           uint         `gorm:"column:customer_id;not null;index"`
	CreatedAt            time.Time    `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time    `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// CreditStatus представляет статус кредитной заявки
type CreditStatus string

const (
	CreditStatusInProgress CreditStatus = "IN_PROGRESS"
	CreditStatusApproved   CreditStatus = "APPROVED"
)

// TableName возвращает имя таблицы для модели Credit
func (Credit) TableName() string {
	return "credits"
}
