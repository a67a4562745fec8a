// Package resolver переводит выбор пользователя в идентификаторы для записи.
//
// Варианты выбора несут идентификатор вместе с подписью, поэтому обычно
// разрешение сводится к повторной проверке, что строка ещё существует.
// Поиск по подписи остаётся для выборов, у которых известна только подпись:
// при дубликатах берётся строка с наименьшим id.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/repository"
)

// Resolver разрешает ссылки на отделы, должности и сотрудников
type Resolver struct {
	logger *slog.Logger
}

// New создаёт новый Resolver
func New(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Department возвращает отдел для обязательной ссылки
func (r *Resolver) Department(ctx context.Context, repo repository.DepartmentRepository, sel dto.Selection) (*domain.Department, error) {
	if sel.None {
		return nil, fmt.Errorf("department: %w", domain.ErrReferenceRequired)
	}

	if sel.ID != 0 {
		dept, err := repo.GetByID(ctx, sel.ID)
		return dept, stale("department", sel, err, domain.ErrDepartmentNotFound)
	}

	depts, err := repo.FindByName(ctx, sel.Label)
	if err != nil {
		return nil, err
	}
	if len(depts) == 0 {
		return nil, stale("department", sel, domain.ErrDepartmentNotFound, domain.ErrDepartmentNotFound)
	}
	r.warnAmbiguous("department", sel.Label, len(depts))
	return &depts[0], nil
}

// Role возвращает должность для обязательной ссылки
func (r *Resolver) Role(ctx context.Context, repo repository.RoleRepository, sel dto.Selection) (*domain.Role, error) {
	if sel.None {
		return nil, fmt.Errorf("role: %w", domain.ErrReferenceRequired)
	}

	if sel.ID != 0 {
		role, err := repo.GetByID(ctx, sel.ID)
		return role, stale("role", sel, err, domain.ErrRoleNotFound)
	}

	roles, err := repo.FindByTitle(ctx, sel.Label)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, stale("role", sel, domain.ErrRoleNotFound, domain.ErrRoleNotFound)
	}
	r.warnAmbiguous("role", sel.Label, len(roles))
	return &roles[0], nil
}

// Employee возвращает сотрудника для обязательной ссылки
func (r *Resolver) Employee(ctx context.Context, repo repository.EmployeeRepository, sel dto.Selection) (*domain.Employee, error) {
	if sel.None {
		return nil, fmt.Errorf("employee: %w", domain.ErrReferenceRequired)
	}

	if sel.ID != 0 {
		emp, err := repo.GetByID(ctx, sel.ID)
		return emp, stale("employee", sel, err, domain.ErrEmployeeNotFound)
	}

	employees, err := repo.FindByFullName(ctx, sel.Label)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, stale("employee", sel, domain.ErrEmployeeNotFound, domain.ErrEmployeeNotFound)
	}
	r.warnAmbiguous("employee", sel.Label, len(employees))
	return &employees[0], nil
}

// Manager разрешает необязательную ссылку на руководителя.
// Выбор "без руководителя" даёт nil без обращения к хранилищу.
func (r *Resolver) Manager(ctx context.Context, repo repository.EmployeeRepository, sel dto.Selection) (*domain.Employee, error) {
	if sel.None {
		return nil, nil
	}
	return r.Employee(ctx, repo, sel)
}

// stale превращает "не найдено" в ErrStaleSelection: строка была в списке выбора,
// но исчезла до записи.
func stale(kind string, sel dto.Selection, err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, notFound) {
		return fmt.Errorf("%s %q: %w", kind, sel.Label, domain.ErrStaleSelection)
	}
	return err
}

func (r *Resolver) warnAmbiguous(kind, label string, matches int) {
	if matches > 1 {
		r.logger.Warn("ambiguous label, using first match",
			slog.String("kind", kind),
			slog.String("label", label),
			slog.Int("matches", matches),
		)
	}
}
