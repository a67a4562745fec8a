package domain

import (
	"github.com/shopspring/decimal"
)

// Department представляет отдел
type Department struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(30);not null;uniqueIndex"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "department"
}

// Role представляет должность внутри отдела
type Role struct {
	ID           int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string          `json:"title" gorm:"type:varchar(30);not null"`
	Salary       decimal.Decimal `json:"salary" gorm:"type:decimal(12,2);not null"`
	DepartmentID int64           `json:"department_id" gorm:"not null;index"`
}

// TableName задаёт имя таблицы для GORM
func (Role) TableName() string {
	return "role"
}

// Employee представляет сотрудника
type Employee struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"first_name" gorm:"type:varchar(30);not null"`
	LastName  string `json:"last_name" gorm:"type:varchar(30);not null"`
	RoleID    int64  `json:"role_id" gorm:"not null;index"`
	ManagerID *int64 `json:"manager_id" gorm:"index"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employee"
}

// FullName возвращает имя и фамилию через пробел
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
