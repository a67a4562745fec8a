package repository

import (
	"context"
	"errors"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с отделами
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	FindByName(ctx context.Context, name string) ([]domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	UtilizedBudget(ctx context.Context, id int64) ([]dto.BudgetRow, error)
	Delete(ctx context.Context, id int64) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&depts).Error
	return depts, err
}

func (r *departmentRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Department{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// UtilizedBudget суммирует оклады сотрудников отдела.
// Соединение внутреннее, поэтому отдел без сотрудников даёт пустой результат.
// Сумма считается в decimal: SQLite хранит NUMERIC как REAL, и SUM в базе теряет копейки.
func (r *departmentRepository) UtilizedBudget(ctx context.Context, id int64) ([]dto.BudgetRow, error) {
	query := `
		SELECT d.name AS department, r.salary AS salary
		FROM employee e
		INNER JOIN role r ON e.role_id = r.id
		INNER JOIN department d ON r.department_id = d.id
		WHERE d.id = ?
	`

	var salaries []struct {
		Department string
		Salary     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&salaries).Error; err != nil {
		return nil, err
	}
	if len(salaries) == 0 {
		return []dto.BudgetRow{}, nil
	}

	total := decimal.Zero
	for _, s := range salaries {
		total = total.Add(s.Salary)
	}

	return []dto.BudgetRow{{
		Department: salaries[0].Department,
		Total:      total.Round(2),
	}}, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}
