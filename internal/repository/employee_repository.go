package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	FindByFullName(ctx context.Context, fullName string) ([]domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListManagers(ctx context.Context) ([]domain.Employee, error)
	ListRows(ctx context.Context, filter dto.EmployeeFilter) ([]dto.EmployeeRow, error)
	CountByRole(ctx context.Context, roleID int64) (int64, error)
	UpdateRole(ctx context.Context, id, roleID int64) error
	ClearManager(ctx context.Context, managerID int64) error
	Delete(ctx context.Context, id int64) error
}

const employeeRowsQuery = `
	SELECT e.id, e.first_name, e.last_name, r.title, d.name AS department, r.salary,
		m.first_name || ' ' || m.last_name AS manager
	FROM employee e
	LEFT JOIN role r ON e.role_id = r.id
	LEFT JOIN department d ON r.department_id = d.id
	LEFT JOIN employee m ON e.manager_id = m.id
`

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) FindByFullName(ctx context.Context, fullName string) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Where("first_name || ' ' || last_name = ?", fullName).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Order("id ASC").Find(&employees).Error
	return employees, err
}

// ListManagers возвращает сотрудников, у которых есть хотя бы один подчинённый
func (r *employeeRepository) ListManagers(ctx context.Context) ([]domain.Employee, error) {
	db := r.db.WithContext(ctx)
	reports := db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.Employee{}).
		Select("manager_id").
		Where("manager_id IS NOT NULL")

	var managers []domain.Employee
	err := db.Where("id IN (?)", reports).Order("id ASC").Find(&managers).Error
	return managers, err
}

func (r *employeeRepository) ListRows(ctx context.Context, filter dto.EmployeeFilter) ([]dto.EmployeeRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ManagerID != nil {
		conds = append(conds, "e.manager_id = ?")
		args = append(args, *filter.ManagerID)
	}
	if filter.DepartmentID != nil {
		conds = append(conds, "d.id = ?")
		args = append(args, *filter.DepartmentID)
	}

	query := employeeRowsQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY d.id, e.id"

	var rows []dto.EmployeeRow
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *employeeRepository) CountByRole(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

func (r *employeeRepository) UpdateRole(ctx context.Context, id, roleID int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("role_id", roleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// ClearManager снимает ссылку на руководителя у всех его подчинённых
func (r *employeeRepository) ClearManager(ctx context.Context, managerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
