package dto

import (
	"github.com/shopspring/decimal"
)

// Selection - значение, выбранное пользователем в списке.
// ID == 0 означает, что известна только подпись; None - выбран пункт "нет ссылки".
type Selection struct {
	ID    int64
	Label string
	None  bool
}

// Choice - вариант выбора, полученный из хранилища
type Choice struct {
	ID    int64
	Label string
}

// CreateDepartmentRequest - запрос на создание отдела
type CreateDepartmentRequest struct {
	Name string `validate:"required,min=1,max=30"`
}

// CreateRoleRequest - запрос на создание должности
type CreateRoleRequest struct {
	Title      string `validate:"required,min=1,max=30"`
	Salary     string `validate:"required,numeric"`
	Department Selection
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FirstName string `validate:"required,min=1,max=30"`
	LastName  string `validate:"required,min=1,max=30"`
	Role      Selection
	Manager   Selection
}

// UpdateEmployeeRoleRequest - запрос на смену должности сотрудника
type UpdateEmployeeRoleRequest struct {
	Employee Selection
	Role     Selection
}

// EmployeeFilter - условия отбора сотрудников для просмотра
type EmployeeFilter struct {
	ManagerID    *int64
	DepartmentID *int64
}

// RoleResult - созданная должность вместе с названием отдела
type RoleResult struct {
	ID         int64
	Title      string
	Salary     decimal.Decimal
	Department string
}

// EmployeeResult - созданный сотрудник с разрешёнными ссылками
type EmployeeResult struct {
	ID        int64
	FirstName string
	LastName  string
	RoleTitle string
	Manager   *string
}

// RoleChange - результат смены должности
type RoleChange struct {
	Employee string
	OldTitle string
	NewTitle string
}

// DepartmentRow - строка списка отделов
type DepartmentRow struct {
	ID   int64
	Name string
}

// RoleRow - строка списка должностей
type RoleRow struct {
	ID         int64
	Title      string
	Department *string
	Salary     decimal.Decimal
}

// EmployeeRow - строка списка сотрудников
type EmployeeRow struct {
	ID         int64
	FirstName  string
	LastName   string
	Title      *string
	Department *string
	Salary     decimal.NullDecimal
	Manager    *string
}

// BudgetRow - суммарный фонд оплаты отдела
type BudgetRow struct {
	Department string
	Total      decimal.Decimal
}
