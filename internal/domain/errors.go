package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrRoleNotFound            = errors.New("role not found")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDuplicateDepartmentName = errors.New("department with this name already exists")
	ErrDepartmentHasRoles      = errors.New("department still has roles assigned to it")
	ErrRoleHasEmployees        = errors.New("role is still held by employees")
	ErrStaleSelection          = errors.New("selected record no longer exists")
	ErrReferenceRequired       = errors.New("a selection is required for this field")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidSalary           = errors.New("salary must be a non-negative amount with at most two decimal places")
)
