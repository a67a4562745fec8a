package service

import (
	"context"
	"strings"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/repository"
	"github.com/employee-tracker/internal/resolver"
	"github.com/shopspring/decimal"
)

// RoleService определяет интерфейс бизнес-логики для должностей
type RoleService interface {
	Options(ctx context.Context) ([]dto.Choice, error)
	List(ctx context.Context) ([]dto.RoleRow, error)
	Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResult, error)
	Delete(ctx context.Context, sel dto.Selection) (*domain.Role, error)
}

type roleService struct {
	store    repository.Store
	resolver *resolver.Resolver
}

// NewRoleService создаёт новый экземпляр сервиса
func NewRoleService(store repository.Store, resolver *resolver.Resolver) RoleService {
	return &roleService{
		store:    store,
		resolver: resolver,
	}
}

func (s *roleService) Options(ctx context.Context) ([]dto.Choice, error) {
	roles, err := s.store.Repositories().Roles.List(ctx)
	if err != nil {
		return nil, err
	}

	choices := make([]dto.Choice, len(roles))
	for i, role := range roles {
		choices[i] = dto.Choice{ID: role.ID, Label: role.Title}
	}
	return choices, nil
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleRow, error) {
	return s.store.Repositories().Roles.ListRows(ctx)
}

func (s *roleService) Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResult, error) {
	salary, err := parseSalary(req.Salary)
	if err != nil {
		return nil, err
	}

	role := &domain.Role{
		Title:  strings.TrimSpace(req.Title),
		Salary: salary,
	}

	var dept *domain.Department
	err = s.store.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		dept, err = s.resolver.Department(ctx, repos.Departments, req.Department)
		if err != nil {
			return err
		}

		role.DepartmentID = dept.ID
		return repos.Roles.Create(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RoleResult{
		ID:         role.ID,
		Title:      role.Title,
		Salary:     role.Salary,
		Department: dept.Name,
	}, nil
}

// Delete удаляет должность, если её не занимает ни один сотрудник
func (s *roleService) Delete(ctx context.Context, sel dto.Selection) (*domain.Role, error) {
	var role *domain.Role

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		role, err = s.resolver.Role(ctx, repos.Roles, sel)
		if err != nil {
			return err
		}

		holders, err := repos.Employees.CountByRole(ctx, role.ID)
		if err != nil {
			return err
		}
		if holders > 0 {
			return domain.ErrRoleHasEmployees
		}

		return repos.Roles.Delete(ctx, role.ID)
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

// maxSalary - первое значение, не помещающееся в DECIMAL(12,2)
var maxSalary = decimal.New(1, 10)

// parseSalary принимает неотрицательную сумму не больше чем с двумя знаками после запятой
func parseSalary(raw string) (decimal.Decimal, error) {
	salary, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || salary.IsNegative() {
		return decimal.Zero, domain.ErrInvalidSalary
	}
	if !salary.Round(2).Equal(salary) || salary.GreaterThanOrEqual(maxSalary) {
		return decimal.Zero, domain.ErrInvalidSalary
	}
	return salary, nil
}
