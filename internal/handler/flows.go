package handler

import (
	"context"

	"github.com/employee-tracker/internal/dto"
	"github.com/employee-tracker/internal/prompt"
)

// options адаптирует загрузку вариантов сервиса к шагу выбора
func options(load func(ctx context.Context) ([]dto.Choice, error)) prompt.OptionsFunc {
	return func(ctx context.Context, _ prompt.Answers) ([]prompt.Option, error) {
		choices, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return toOptions(choices), nil
	}
}

func toOptions(choices []dto.Choice) []prompt.Option {
	opts := make([]prompt.Option, len(choices))
	for i, c := range choices {
		opts[i] = prompt.Option{Label: c.Label, ID: c.ID}
	}
	return opts
}

func (h *ActionHandler) budgetFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("department", "Please select a department to view its total utilized budget:", options(h.deptService.Options)),
	)
}

func (h *ActionHandler) addDepartmentFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Input("name", "Please enter the name of the department you would like to add:"),
	)
}

func (h *ActionHandler) addRoleFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Input("title", "Please enter the title of the role you would like to add:"),
		prompt.Input("salary", "Please enter the salary of the role you would like to add:"),
		prompt.Select("department", "Please select the department for this role:", options(h.deptService.Options)),
	)
}

func (h *ActionHandler) addEmployeeFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Input("first_name", "Please enter the employee's first name:"),
		prompt.Input("last_name", "Please enter the employee's last name:"),
		prompt.Select("role", "Please select the employee's role:", options(h.roleService.Options)),
		prompt.Select("manager", "Please select the employee's manager:", options(h.empService.Options)).
			WithSentinel(NoManager),
	)
}

// updateRoleFlow предлагает только должности, отличные от текущей должности выбранного сотрудника
func (h *ActionHandler) updateRoleFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("employee", "Please select the employee to update:", options(h.empService.OptionsWithRole)),
		prompt.Select("role", "Please select the employee's new role:",
			func(ctx context.Context, answers prompt.Answers) ([]prompt.Option, error) {
				choices, err := h.empService.ReassignOptions(ctx, toSelection(answers.Option("employee")))
				if err != nil {
					return nil, err
				}
				return toOptions(choices), nil
			}),
	)
}

func (h *ActionHandler) byManagerFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("manager", "Please select a manager to view their employees:", options(h.empService.ManagerOptions)),
	)
}

func (h *ActionHandler) byDepartmentFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("department", "Please select a department to view its employees:", options(h.deptService.Options)),
	)
}

func (h *ActionHandler) deleteDepartmentFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("department", "Please select a department to delete:", options(h.deptService.Options)),
	)
}

func (h *ActionHandler) deleteRoleFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("role", "Please select a role to delete:", options(h.roleService.Options)),
	)
}

func (h *ActionHandler) deleteEmployeeFlow() *prompt.Flow {
	return prompt.NewFlow(
		prompt.Select("employee", "Please select an employee to delete:", options(h.empService.Options)),
	)
}
