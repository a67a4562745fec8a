package service

import (
	"context"
	"errors"
	"strings"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/repository"
	"github.com/employee-tracker/internal/resolver"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Options(ctx context.Context) ([]dto.Choice, error)
	OptionsWithRole(ctx context.Context) ([]dto.Choice, error)
	ManagerOptions(ctx context.Context) ([]dto.Choice, error)
	ReassignOptions(ctx context.Context, emp dto.Selection) ([]dto.Choice, error)
	List(ctx context.Context) ([]dto.EmployeeRow, error)
	ListByManager(ctx context.Context, manager dto.Selection) ([]dto.EmployeeRow, error)
	ListByDepartment(ctx context.Context, dept dto.Selection) ([]dto.EmployeeRow, error)
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResult, error)
	UpdateRole(ctx context.Context, req *dto.UpdateEmployeeRoleRequest) (*dto.RoleChange, error)
	Delete(ctx context.Context, sel dto.Selection) (*domain.Employee, error)
}

type employeeService struct {
	store    repository.Store
	resolver *resolver.Resolver
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(store repository.Store, resolver *resolver.Resolver) EmployeeService {
	return &employeeService{
		store:    store,
		resolver: resolver,
	}
}

func (s *employeeService) Options(ctx context.Context) ([]dto.Choice, error) {
	employees, err := s.store.Repositories().Employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return employeeChoices(employees), nil
}

// OptionsWithRole подписывает сотрудников как "Имя Фамилия - Должность"
func (s *employeeService) OptionsWithRole(ctx context.Context) ([]dto.Choice, error) {
	rows, err := s.store.Repositories().Employees.ListRows(ctx, dto.EmployeeFilter{})
	if err != nil {
		return nil, err
	}

	choices := make([]dto.Choice, len(rows))
	for i, row := range rows {
		label := row.FirstName + " " + row.LastName
		if row.Title != nil {
			label += " - " + *row.Title
		}
		choices[i] = dto.Choice{ID: row.ID, Label: label}
	}
	return choices, nil
}

func (s *employeeService) ManagerOptions(ctx context.Context) ([]dto.Choice, error) {
	managers, err := s.store.Repositories().Employees.ListManagers(ctx)
	if err != nil {
		return nil, err
	}
	return employeeChoices(managers), nil
}

// ReassignOptions возвращает должности, на которые можно перевести сотрудника
func (s *employeeService) ReassignOptions(ctx context.Context, sel dto.Selection) ([]dto.Choice, error) {
	repos := s.store.Repositories()

	emp, err := s.resolver.Employee(ctx, repos.Employees, sel)
	if err != nil {
		return nil, err
	}

	roles, err := repos.Roles.List(ctx)
	if err != nil {
		return nil, err
	}

	choices := make([]dto.Choice, 0, len(roles))
	for _, role := range roles {
		if role.ID != emp.RoleID {
			choices = append(choices, dto.Choice{ID: role.ID, Label: role.Title})
		}
	}
	return choices, nil
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeRow, error) {
	return s.store.Repositories().Employees.ListRows(ctx, dto.EmployeeFilter{})
}

func (s *employeeService) ListByManager(ctx context.Context, manager dto.Selection) ([]dto.EmployeeRow, error) {
	repos := s.store.Repositories()

	emp, err := s.resolver.Employee(ctx, repos.Employees, manager)
	if err != nil {
		return nil, err
	}

	return repos.Employees.ListRows(ctx, dto.EmployeeFilter{ManagerID: &emp.ID})
}

func (s *employeeService) ListByDepartment(ctx context.Context, dept dto.Selection) ([]dto.EmployeeRow, error) {
	repos := s.store.Repositories()

	d, err := s.resolver.Department(ctx, repos.Departments, dept)
	if err != nil {
		return nil, err
	}

	return repos.Employees.ListRows(ctx, dto.EmployeeFilter{DepartmentID: &d.ID})
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResult, error) {
	emp := &domain.Employee{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	result := &dto.EmployeeResult{}

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		role, err := s.resolver.Role(ctx, repos.Roles, req.Role)
		if err != nil {
			return err
		}

		manager, err := s.resolver.Manager(ctx, repos.Employees, req.Manager)
		if err != nil {
			return err
		}

		emp.RoleID = role.ID
		result.RoleTitle = role.Title
		if manager != nil {
			emp.ManagerID = &manager.ID
			name := manager.FullName()
			result.Manager = &name
		}

		return repos.Employees.Create(ctx, emp)
	})
	if err != nil {
		return nil, err
	}

	result.ID = emp.ID
	result.FirstName = emp.FirstName
	result.LastName = emp.LastName
	return result, nil
}

func (s *employeeService) UpdateRole(ctx context.Context, req *dto.UpdateEmployeeRoleRequest) (*dto.RoleChange, error) {
	change := &dto.RoleChange{}

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		emp, err := s.resolver.Employee(ctx, repos.Employees, req.Employee)
		if err != nil {
			return err
		}

		newRole, err := s.resolver.Role(ctx, repos.Roles, req.Role)
		if err != nil {
			return err
		}

		// Старая должность нужна только для сообщения
		oldRole, err := repos.Roles.GetByID(ctx, emp.RoleID)
		switch {
		case err == nil:
			change.OldTitle = oldRole.Title
		case !errors.Is(err, domain.ErrRoleNotFound):
			return err
		}

		change.Employee = emp.FullName()
		change.NewTitle = newRole.Title

		return repos.Employees.UpdateRole(ctx, emp.ID, newRole.ID)
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

// Delete удаляет сотрудника; у его подчинённых ссылка на руководителя очищается
func (s *employeeService) Delete(ctx context.Context, sel dto.Selection) (*domain.Employee, error) {
	var emp *domain.Employee

	err := s.store.Transaction(ctx, func(repos repository.Repositories) error {
		var err error
		emp, err = s.resolver.Employee(ctx, repos.Employees, sel)
		if err != nil {
			return err
		}

		if err := repos.Employees.ClearManager(ctx, emp.ID); err != nil {
			return err
		}

		return repos.Employees.Delete(ctx, emp.ID)
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func employeeChoices(employees []domain.Employee) []dto.Choice {
	choices := make([]dto.Choice, len(employees))
	for i, emp := range employees {
		choices[i] = dto.Choice{ID: emp.ID, Label: emp.FullName()}
	}
	return choices
}
