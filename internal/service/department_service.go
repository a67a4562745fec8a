package service

import (
	"context"
	"strings"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/repository"
	"github.com/employee-tracker/internal/resolver"
)

// DepartmentService определяет интерфейс бизнес-логики для отделов
type DepartmentService interface {
	Options(ctx context.Context) ([]dto.Choice, error)
	List(ctx context.Context) ([]dto.DepartmentRow, error)
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	Budget(ctx context.Context, sel dto.Selection) ([]dto.BudgetRow, error)
	Delete(ctx context.Context, sel dto.Selection) (*domain.Department, error)
}

type departmentService struct {
	store    repository.Store
	resolver *resolver.Resolver
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(store repository.Store, resolver *resolver.Resolver) DepartmentService {
	return &departmentService{
		store:    store,
		resolver: resolver,
	}
}

func (s *departmentService) Options(ctx context.Context) ([]dto.Choice, error) {
	depts, err := s.store.Repositories().Departments.List(ctx)
	if err != nil {
		return nil, err
	}

	choices := make([]dto.Choice, len(depts))
	for i, dept := range depts {
		choices[i] = dto.Choice{ID: dept.ID, Label: dept.Name}
	}
	return choices, nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentRow, error) {
	depts, err := s.store.Repositories().Departments.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.DepartmentRow, len(depts))
	for i, dept := range depts {
		rows[i] = dto.DepartmentRow{ID: dept.ID, Name: dept.Name}
	}
	return rows, nil
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	dept := &domain.Department{Name: strings.TrimSpace(req.Name)}

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		// Проверяем уникальность имени
		exists, err := repos.Departments.ExistsByName(ctx, dept.Name)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateDepartmentName
		}

		return repos.Departments.Create(ctx, dept)
	})
	if err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) Budget(ctx context.Context, sel dto.Selection) ([]dto.BudgetRow, error) {
	repos := s.store.Repositories()

	dept, err := s.resolver.Department(ctx, repos.Departments, sel)
	if err != nil {
		return nil, err
	}

	return repos.Departments.UtilizedBudget(ctx, dept.ID)
}

// Delete удаляет отдел. Отдел, к которому ещё привязаны должности, не удаляется.
func (s *departmentService) Delete(ctx context.Context, sel dto.Selection) (*domain.Department, error) {
	var dept *domain.Department

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		dept, err = s.resolver.Department(ctx, repos.Departments, sel)
		if err != nil {
			return err
		}

		roles, err := repos.Roles.CountByDepartment(ctx, dept.ID)
		if err != nil {
			return err
		}
		if roles > 0 {
			return domain.ErrDepartmentHasRoles
		}

		return repos.Departments.Delete(ctx, dept.ID)
	})
	if err != nil {
		return nil, err
	}

	return dept, nil
}
