package repository

import (
	"context"
	"errors"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"gorm.io/gorm"
)

// RoleRepository определяет интерфейс для работы с должностями
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	ListRows(ctx context.Context) ([]dto.RoleRow, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository создаёт новый экземпляр репозитория
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByTitle(ctx context.Context, title string) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Where("title = ?", title).
		Order("id ASC").
		Find(&roles).Error
	return roles, err
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) ListRows(ctx context.Context) ([]dto.RoleRow, error) {
	query := `
		SELECT r.id, r.title, d.name AS department, r.salary
		FROM role r
		LEFT JOIN department d ON r.department_id = d.id
		ORDER BY r.id
	`

	var rows []dto.RoleRow
	err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error
	return rows, err
}

func (r *roleRepository) CountByDepartment(ctx context.Context, departmentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Role{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Role{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
