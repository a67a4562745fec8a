package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/employee-tracker/internal/domain"
	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/presenter"
	"github.com/employee-tracker/internal/prompt"
	"github.com/employee-tracker/internal/service"
	"github.com/go-playground/validator/v10"
)

// NoManager - служебный вариант выбора руководителя
const NoManager = "No Manager"

type ActionHandler struct {
	deptService service.DepartmentService
	roleService service.RoleService
	empService  service.EmployeeService
	prompter    prompt.Prompter
	presenter   presenter.Presenter
	validator   *validator.Validate
	out         io.Writer
	logger      *slog.Logger
}

func NewActionHandler(
	deptService service.DepartmentService,
	roleService service.RoleService,
	empService service.EmployeeService,
	prompter prompt.Prompter,
	presenter presenter.Presenter,
	out io.Writer,
	logger *slog.Logger,
) *ActionHandler {
	return &ActionHandler{
		deptService: deptService,
		roleService: roleService,
		empService:  empService,
		prompter:    prompter,
		presenter:   presenter,
		validator:   validator.New(),
		out:         out,
		logger:      logger,
	}
}

func (h *ActionHandler) ViewDepartments(ctx context.Context) error {
	rows, err := h.deptService.List(ctx)
	if err != nil {
		return err
	}

	h.presenter.Render(departmentTable(rows))
	return nil
}

func (h *ActionHandler) ViewRoles(ctx context.Context) error {
	rows, err := h.roleService.List(ctx)
	if err != nil {
		return err
	}

	h.presenter.Render(roleTable(rows))
	return nil
}

func (h *ActionHandler) ViewEmployees(ctx context.Context) error {
	rows, err := h.empService.List(ctx)
	if err != nil {
		return err
	}

	h.presenter.Render(employeeTable(rows))
	return nil
}

func (h *ActionHandler) ViewBudget(ctx context.Context) error {
	answers, err := h.budgetFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	rows, err := h.deptService.Budget(ctx, toSelection(answers.Option("department")))
	if err != nil {
		return err
	}

	h.presenter.Render(budgetTable(rows))
	return nil
}

func (h *ActionHandler) AddDepartment(ctx context.Context) error {
	answers, err := h.addDepartmentFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	req := dto.CreateDepartmentRequest{Name: answers.Text("name")}
	if err := h.validate(&req); err != nil {
		return err
	}

	dept, err := h.deptService.Create(ctx, &req)
	if err != nil {
		return err
	}

	h.printf("Added %s department to the database.\n", dept.Name)
	return nil
}

func (h *ActionHandler) AddRole(ctx context.Context) error {
	answers, err := h.addRoleFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	req := dto.CreateRoleRequest{
		Title:      answers.Text("title"),
		Salary:     answers.Text("salary"),
		Department: toSelection(answers.Option("department")),
	}
	if err := h.validate(&req); err != nil {
		return err
	}

	role, err := h.roleService.Create(ctx, &req)
	if err != nil {
		return err
	}

	h.printf("Added %s role to the %s department in the database.\n", role.Title, role.Department)
	return nil
}

func (h *ActionHandler) AddEmployee(ctx context.Context) error {
	answers, err := h.addEmployeeFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	req := dto.CreateEmployeeRequest{
		FirstName: answers.Text("first_name"),
		LastName:  answers.Text("last_name"),
		Role:      toSelection(answers.Option("role")),
		Manager:   toSelection(answers.Option("manager")),
	}
	if err := h.validate(&req); err != nil {
		return err
	}

	emp, err := h.empService.Create(ctx, &req)
	if err != nil {
		return err
	}

	if emp.Manager == nil {
		h.printf("Added %s %s to the database as a %s.\n", emp.FirstName, emp.LastName, emp.RoleTitle)
	} else {
		h.printf("Added %s %s to the database as a %s reporting to %s.\n", emp.FirstName, emp.LastName, emp.RoleTitle, *emp.Manager)
	}
	return nil
}

func (h *ActionHandler) UpdateEmployeeRole(ctx context.Context) error {
	answers, err := h.updateRoleFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	change, err := h.empService.UpdateRole(ctx, &dto.UpdateEmployeeRoleRequest{
		Employee: toSelection(answers.Option("employee")),
		Role:     toSelection(answers.Option("role")),
	})
	if err != nil {
		return err
	}

	h.printf("Updated %s's role from %s to %s.\n", change.Employee, change.OldTitle, change.NewTitle)
	return nil
}

func (h *ActionHandler) ViewEmployeesByManager(ctx context.Context) error {
	answers, err := h.byManagerFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	rows, err := h.empService.ListByManager(ctx, toSelection(answers.Option("manager")))
	if err != nil {
		return err
	}

	h.presenter.Render(employeeTable(rows))
	return nil
}

func (h *ActionHandler) ViewEmployeesByDepartment(ctx context.Context) error {
	answers, err := h.byDepartmentFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	rows, err := h.empService.ListByDepartment(ctx, toSelection(answers.Option("department")))
	if err != nil {
		return err
	}

	h.presenter.Render(employeeTable(rows))
	return nil
}

func (h *ActionHandler) DeleteDepartment(ctx context.Context) error {
	answers, err := h.deleteDepartmentFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	dept, err := h.deptService.Delete(ctx, toSelection(answers.Option("department")))
	if err != nil {
		return err
	}

	h.printf("Deleted %s department.\n", dept.Name)
	return nil
}

func (h *ActionHandler) DeleteRole(ctx context.Context) error {
	answers, err := h.deleteRoleFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	role, err := h.roleService.Delete(ctx, toSelection(answers.Option("role")))
	if err != nil {
		return err
	}

	h.printf("Deleted %s role.\n", role.Title)
	return nil
}

func (h *ActionHandler) DeleteEmployee(ctx context.Context) error {
	answers, err := h.deleteEmployeeFlow().Run(ctx, h.prompter)
	if err != nil {
		return err
	}

	emp, err := h.empService.Delete(ctx, toSelection(answers.Option("employee")))
	if err != nil {
		return err
	}

	h.printf("Deleted %s employee.\n", emp.FullName())
	return nil
}

func (h *ActionHandler) validate(req any) error {
	if err := h.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func (h *ActionHandler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

// handleServiceError печатает понятное пользователю сообщение об ошибке
func (h *ActionHandler) handleServiceError(err error) {
	switch {
	case errors.Is(err, prompt.ErrAborted):
		h.printf("Cancelled.\n")
	case errors.Is(err, prompt.ErrNoOptions):
		h.printf("Error: nothing to choose from (%v).\n", err)
	case errors.Is(err, domain.ErrStaleSelection):
		h.printf("Error: the selected record was changed or removed, please try again.\n")
	case errors.Is(err, domain.ErrDuplicateDepartmentName):
		h.printf("Error: a department with this name already exists.\n")
	case errors.Is(err, domain.ErrDepartmentHasRoles):
		h.printf("Error: the department still has roles; delete or move them first.\n")
	case errors.Is(err, domain.ErrRoleHasEmployees):
		h.printf("Error: the role is still held by employees; reassign them first.\n")
	case errors.Is(err, domain.ErrInvalidSalary):
		h.printf("Error: salary must be a non-negative amount with at most two decimal places.\n")
	case errors.Is(err, domain.ErrInvalidInput):
		h.printf("Error: %v.\n", err)
	case errors.Is(err, domain.ErrReferenceRequired):
		h.printf("Error: %v.\n", err)
	default:
		h.logger.Error("store error", slog.Any("error", err))
		h.printf("Error: %v\n", err)
	}
}

func toSelection(opt prompt.Option) dto.Selection {
	return dto.Selection{ID: opt.ID, Label: opt.Label, None: opt.None}
}

func departmentTable(rows []dto.DepartmentRow) presenter.Table {
	t := presenter.Table{Headers: []string{"Department ID", "Department Name"}}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(row.ID, 10), row.Name})
	}
	return t
}

func roleTable(rows []dto.RoleRow) presenter.Table {
	t := presenter.Table{Headers: []string{"Role ID", "Job Title", "Department", "Salary"}}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(row.ID, 10),
			row.Title,
			deref(row.Department),
			row.Salary.String(),
		})
	}
	return t
}

func employeeTable(rows []dto.EmployeeRow) presenter.Table {
	t := presenter.Table{Headers: []string{"Employee ID", "First Name", "Last Name", "Job Title", "Department", "Salary", "Manager"}}
	for _, row := range rows {
		salary := ""
		if row.Salary.Valid {
			salary = row.Salary.Decimal.String()
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(row.ID, 10),
			row.FirstName,
			row.LastName,
			deref(row.Title),
			deref(row.Department),
			salary,
			deref(row.Manager),
		})
	}
	return t
}

func budgetTable(rows []dto.BudgetRow) presenter.Table {
	t := presenter.Table{Headers: []string{"Department", "Total Utilized Budget"}}
	for _, row := range rows {
		t.Rows = append(t.Rows, []string{row.Department, row.Total.String()})
	}
	return t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
