package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/employee-tracker/internal/middleware"
	"github.com/employee-tracker/internal/prompt"
)

// Пункты главного меню
const (
	ActionViewDepartments           = "View departments"
	ActionViewRoles                 = "View roles"
	ActionViewEmployees             = "View employees"
	ActionViewBudget                = "View total utilized budget of a department"
	ActionAddDepartment             = "Add department"
	ActionAddRole                   = "Add role"
	ActionAddEmployee               = "Add employee"
	ActionUpdateEmployeeRole        = "Update employee role"
	ActionViewEmployeesByManager    = "View employees by manager"
	ActionViewEmployeesByDepartment = "View employees by department"
	ActionDeleteDepartment          = "Delete department"
	ActionDeleteRole                = "Delete role"
	ActionDeleteEmployee            = "Delete employee"
	ActionExit                      = "Exit"
)

const menuMessage = "Please make a selection:"

// State - состояние главного цикла
type State int

const (
	AwaitingSelection State = iota
	Executing
	Terminated
)

func (s State) String() string {
	switch s {
	case AwaitingSelection:
		return "awaiting_selection"
	case Executing:
		return "executing"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type route struct {
	name   string
	action middleware.Action
}

// Router сопоставляет пункты меню с обработчиками и крутит главный цикл
type Router struct {
	handler  *ActionHandler
	prompter prompt.Prompter
	closer   io.Closer
	logger   *slog.Logger
	routes   []route
	state    State
}

// NewRouter создаёт новый роутер. closer освобождается при выборе Exit.
func NewRouter(handler *ActionHandler, prompter prompt.Prompter, closer io.Closer, logger *slog.Logger) *Router {
	return &Router{
		handler:  handler,
		prompter: prompter,
		closer:   closer,
		logger:   logger,
	}
}

// Setup регистрирует пункты меню в порядке показа
func (r *Router) Setup() *Router {
	h := r.handler
	mws := []middleware.Middleware{
		middleware.Recoverer(r.logger),
		middleware.Logger(r.logger),
	}

	r.routes = nil
	for _, rt := range []route{
		{ActionViewDepartments, h.ViewDepartments},
		{ActionViewRoles, h.ViewRoles},
		{ActionViewEmployees, h.ViewEmployees},
		{ActionViewBudget, h.ViewBudget},
		{ActionAddDepartment, h.AddDepartment},
		{ActionAddRole, h.AddRole},
		{ActionAddEmployee, h.AddEmployee},
		{ActionUpdateEmployeeRole, h.UpdateEmployeeRole},
		{ActionViewEmployeesByManager, h.ViewEmployeesByManager},
		{ActionViewEmployeesByDepartment, h.ViewEmployeesByDepartment},
		{ActionDeleteDepartment, h.DeleteDepartment},
		{ActionDeleteRole, h.DeleteRole},
		{ActionDeleteEmployee, h.DeleteEmployee},
	} {
		r.routes = append(r.routes, route{
			name:   rt.name,
			action: middleware.Chain(rt.name, rt.action, mws...),
		})
	}

	return r
}

// State возвращает текущее состояние цикла
func (r *Router) State() State {
	return r.state
}

// Menu возвращает пункты меню в порядке показа, Exit последним
func (r *Router) Menu() []prompt.Option {
	opts := make([]prompt.Option, 0, len(r.routes)+1)
	for i, rt := range r.routes {
		opts = append(opts, prompt.Option{Label: rt.name, ID: int64(i + 1)})
	}
	return append(opts, prompt.Option{Label: ActionExit, ID: int64(len(r.routes) + 1)})
}

// Run показывает меню, пока не выбран Exit. Прерывание выбора в меню равносильно Exit.
func (r *Router) Run(ctx context.Context) error {
	r.state = AwaitingSelection

	for {
		choice, err := r.prompter.Select(ctx, menuMessage, r.Menu())
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) || ctx.Err() != nil {
				return r.exit()
			}
			_ = r.exit()
			return err
		}

		if choice.Label == ActionExit {
			return r.exit()
		}

		r.Dispatch(ctx, choice.Label)
	}
}

// Dispatch выполняет один пункт меню. Ошибка обработчика выводится
// пользователю и не прерывает цикл.
func (r *Router) Dispatch(ctx context.Context, name string) {
	for _, rt := range r.routes {
		if rt.name != name {
			continue
		}

		r.state = Executing
		if err := rt.action(ctx); err != nil {
			r.handler.handleServiceError(err)
		}
		r.state = AwaitingSelection
		return
	}

	r.handler.printf("Unsupported action: %s\n", name)
}

func (r *Router) exit() error {
	r.state = Terminated
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
