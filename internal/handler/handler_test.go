package handler_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/employee-tracker/internal/handler"
	"github.com/employee-tracker/internal/presenter"
	"github.com/employee-tracker/internal/resolver"
	"github.com/employee-tracker/internal/service"
	"github.com/employee-tracker/internal/testutils"
)

type capturePresenter struct {
	tables []presenter.Table
}

func (p *capturePresenter) Render(t presenter.Table) {
	p.tables = append(p.tables, t)
}

func (p *capturePresenter) last(t *testing.T) presenter.Table {
	t.Helper()
	if len(p.tables) == 0 {
		t.Fatal("expected a rendered table")
	}
	return p.tables[len(p.tables)-1]
}

type closeRecorder struct {
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

type fixture struct {
	ctx       context.Context
	prompter  *testutils.ScriptedPrompter
	presenter *capturePresenter
	out       *bytes.Buffer
	closer    *closeRecorder
	handler   *handler.ActionHandler
	router    *handler.Router
}

func newFixture(t *testing.T) *fixture {
	store := testutils.OpenStore(t)
	logger := testutils.DiscardLogger()
	res := resolver.New(logger)

	f := &fixture{
		ctx:       context.Background(),
		prompter:  testutils.NewScriptedPrompter(),
		presenter: &capturePresenter{},
		out:       &bytes.Buffer{},
		closer:    &closeRecorder{},
	}
	f.handler = handler.NewActionHandler(
		service.NewDepartmentService(store, res),
		service.NewRoleService(store, res),
		service.NewEmployeeService(store, res),
		f.prompter,
		f.presenter,
		f.out,
		logger,
	)
	f.router = handler.NewRouter(f.handler, f.prompter, f.closer, logger).Setup()
	return f
}

// run выполняет пункт меню с заданными ответами и возвращает напечатанный текст
func (f *fixture) run(action string, answers ...string) string {
	f.out.Reset()
	f.prompter.Push(answers...)
	f.router.Dispatch(f.ctx, action)
	return f.out.String()
}

func (f *fixture) seedEngineering(t *testing.T) {
	t.Helper()
	f.run(handler.ActionAddDepartment, "Engineering")
	f.run(handler.ActionAddRole, "Engineer", "90000", "Engineering")
	f.run(handler.ActionAddEmployee, "Ada", "Lovelace", "Engineer", handler.NoManager)
	f.run(handler.ActionAddEmployee, "Grace", "Hopper", "Engineer", "Ada Lovelace")
	if f.prompter.Remaining() != 0 {
		t.Fatalf("seed left %d unused answers", f.prompter.Remaining())
	}
}

func findRow(tbl presenter.Table, col int, value string) []string {
	for _, row := range tbl.Rows {
		if row[col] == value {
			return row
		}
	}
	return nil
}

func TestAddDepartment(t *testing.T) {
	f := newFixture(t)

	out := f.run(handler.ActionAddDepartment, "Engineering")
	if out != "Added Engineering department to the database.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	f.run(handler.ActionViewDepartments)
	tbl := f.presenter.last(t)
	if len(tbl.Rows) != 1 || tbl.Rows[0][1] != "Engineering" {
		t.Errorf("expected Engineering to be listed, got %v", tbl.Rows)
	}
	if tbl.Headers[0] != "Department ID" || tbl.Headers[1] != "Department Name" {
		t.Errorf("unexpected headers: %v", tbl.Headers)
	}
}

func TestAddRole(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")

	out := f.run(handler.ActionAddRole, "Engineer", "90000", "Engineering")
	if out != "Added Engineer role to the Engineering department in the database.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	f.run(handler.ActionViewRoles)
	row := findRow(f.presenter.last(t), 1, "Engineer")
	if row == nil {
		t.Fatal("expected Engineer in roles table")
	}
	if row[2] != "Engineering" || row[3] != "90000" {
		t.Errorf("expected Engineering/90000, got %v", row)
	}
}

func TestAddEmployee_NoManager(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")
	f.run(handler.ActionAddRole, "Engineer", "90000", "Engineering")

	out := f.run(handler.ActionAddEmployee, "Ada", "Lovelace", "Engineer", handler.NoManager)
	if out != "Added Ada Lovelace to the database as a Engineer.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	offered := f.prompter.LastOffered()
	if len(offered) != 1 || offered[0] != handler.NoManager {
		t.Errorf("expected only the sentinel for the first employee, got %v", offered)
	}

	f.run(handler.ActionViewEmployees)
	row := findRow(f.presenter.last(t), 1, "Ada")
	if row == nil {
		t.Fatal("expected Ada in employees table")
	}
	if row[3] != "Engineer" || row[4] != "Engineering" || row[5] != "90000" {
		t.Errorf("unexpected role columns: %v", row)
	}
	if row[6] != "" {
		t.Errorf("expected blank manager cell, got %q", row[6])
	}
}

func TestAddEmployee_WithManager(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")
	f.run(handler.ActionAddRole, "Engineer", "90000", "Engineering")
	f.run(handler.ActionAddEmployee, "Ada", "Lovelace", "Engineer", handler.NoManager)

	out := f.run(handler.ActionAddEmployee, "Grace", "Hopper", "Engineer", "Ada Lovelace")
	if out != "Added Grace Hopper to the database as a Engineer reporting to Ada Lovelace.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	offered := f.prompter.LastOffered()
	if len(offered) != 2 || offered[0] != "Ada Lovelace" || offered[1] != handler.NoManager {
		t.Errorf("expected candidates then sentinel, got %v", offered)
	}
}

func TestViewEmployeesByManager(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)

	f.run(handler.ActionViewEmployeesByManager, "Ada Lovelace")

	offered := f.prompter.LastOffered()
	if len(offered) != 1 || offered[0] != "Ada Lovelace" {
		t.Errorf("expected only managers with reports, got %v", offered)
	}

	tbl := f.presenter.last(t)
	if len(tbl.Rows) != 1 || tbl.Rows[0][1] != "Grace" {
		t.Errorf("expected only Grace, got %v", tbl.Rows)
	}
}

func TestViewEmployeesByDepartment(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)
	f.run(handler.ActionAddDepartment, "Sales")

	f.run(handler.ActionViewEmployeesByDepartment, "Engineering")
	if n := len(f.presenter.last(t).Rows); n != 2 {
		t.Errorf("expected 2 employees in Engineering, got %d", n)
	}

	f.run(handler.ActionViewEmployeesByDepartment, "Sales")
	if n := len(f.presenter.last(t).Rows); n != 0 {
		t.Errorf("expected empty Sales table, got %d rows", n)
	}
}

func TestUpdateEmployeeRole(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)
	f.run(handler.ActionAddRole, "Lead Engineer", "120000", "Engineering")

	out := f.run(handler.ActionUpdateEmployeeRole, "Grace Hopper - Engineer", "Lead Engineer")
	if out != "Updated Grace Hopper's role from Engineer to Lead Engineer.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	offered := f.prompter.LastOffered()
	if len(offered) != 1 || offered[0] != "Lead Engineer" {
		t.Errorf("expected current role to be excluded, got %v", offered)
	}

	f.run(handler.ActionViewEmployees)
	row := findRow(f.presenter.last(t), 1, "Grace")
	if row == nil {
		t.Fatal("expected Grace in employees table")
	}
	if row[3] != "Lead Engineer" {
		t.Errorf("expected Lead Engineer, got %q", row[3])
	}
	if row[6] != "Ada Lovelace" {
		t.Errorf("expected manager to stay Ada Lovelace, got %q", row[6])
	}
}

func TestViewBudget(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)
	f.run(handler.ActionAddRole, "Lead Engineer", "120000", "Engineering")
	f.run(handler.ActionUpdateEmployeeRole, "Grace Hopper - Engineer", "Lead Engineer")

	f.run(handler.ActionViewBudget, "Engineering")
	tbl := f.presenter.last(t)
	if len(tbl.Rows) != 1 {
		t.Fatalf("expected 1 budget row, got %v", tbl.Rows)
	}
	if tbl.Rows[0][0] != "Engineering" || tbl.Rows[0][1] != "210000" {
		t.Errorf("expected Engineering 210000, got %v", tbl.Rows[0])
	}
}

func TestViewBudget_FractionalSalaries(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")
	f.run(handler.ActionAddRole, "A", "0.10", "Engineering")
	f.run(handler.ActionAddRole, "B", "0.20", "Engineering")
	f.run(handler.ActionAddEmployee, "Ada", "Lovelace", "A", handler.NoManager)
	f.run(handler.ActionAddEmployee, "Grace", "Hopper", "B", handler.NoManager)

	f.run(handler.ActionViewBudget, "Engineering")
	tbl := f.presenter.last(t)
	if len(tbl.Rows) != 1 {
		t.Fatalf("expected 1 budget row, got %v", tbl.Rows)
	}
	if tbl.Rows[0][1] != "0.3" {
		t.Errorf("expected 0.3, got %s", tbl.Rows[0][1])
	}
}

func TestAddRole_RejectsThirdDecimalPlace(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")

	out := f.run(handler.ActionAddRole, "C", "12.345", "Engineering")
	if out != "Error: salary must be a non-negative amount with at most two decimal places.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	f.run(handler.ActionViewRoles)
	if n := len(f.presenter.last(t).Rows); n != 0 {
		t.Errorf("expected no roles, got %d", n)
	}
}

func TestViewBudget_NoEmployees(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Sales")

	f.run(handler.ActionViewBudget, "Sales")
	tbl := f.presenter.last(t)
	if len(tbl.Rows) != 0 {
		t.Errorf("expected empty budget, got %v", tbl.Rows)
	}
	if len(tbl.Headers) != 2 {
		t.Errorf("expected headers to be kept, got %v", tbl.Headers)
	}
}

func TestDelete_BlockedByDependents(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)

	out := f.run(handler.ActionDeleteDepartment, "Engineering")
	if !strings.Contains(out, "still has roles") || strings.Contains(out, "Deleted") {
		t.Errorf("expected department delete to be blocked, got %q", out)
	}

	out = f.run(handler.ActionDeleteRole, "Engineer")
	if !strings.Contains(out, "still held by employees") || strings.Contains(out, "Deleted") {
		t.Errorf("expected role delete to be blocked, got %q", out)
	}
}

func TestDelete_Chain(t *testing.T) {
	f := newFixture(t)
	f.seedEngineering(t)

	if out := f.run(handler.ActionDeleteEmployee, "Ada Lovelace"); out != "Deleted Ada Lovelace employee.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	f.run(handler.ActionViewEmployees)
	row := findRow(f.presenter.last(t), 1, "Grace")
	if row == nil || row[6] != "" {
		t.Errorf("expected Grace without manager, got %v", row)
	}

	f.run(handler.ActionDeleteEmployee, "Grace Hopper")
	if out := f.run(handler.ActionDeleteRole, "Engineer"); out != "Deleted Engineer role.\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if out := f.run(handler.ActionDeleteDepartment, "Engineering"); out != "Deleted Engineering department.\n" {
		t.Errorf("unexpected output: %q", out)
	}

	f.run(handler.ActionViewDepartments)
	if n := len(f.presenter.last(t).Rows); n != 0 {
		t.Errorf("expected no departments, got %d", n)
	}
}

func TestFailedWrite_NoSuccessMessage(t *testing.T) {
	f := newFixture(t)
	f.run(handler.ActionAddDepartment, "Engineering")

	out := f.run(handler.ActionAddRole, "Engineer", "lots", "Engineering")
	if strings.Contains(out, "Added") {
		t.Errorf("expected no success message, got %q", out)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("expected error message, got %q", out)
	}

	out = f.run(handler.ActionAddDepartment, "Engineering")
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected duplicate error, got %q", out)
	}

	f.run(handler.ActionViewRoles)
	if n := len(f.presenter.last(t).Rows); n != 0 {
		t.Errorf("expected no roles, got %d", n)
	}
}

func TestNoOptions(t *testing.T) {
	f := newFixture(t)

	out := f.run(handler.ActionAddRole, "Engineer", "90000")
	if !strings.Contains(out, "nothing to choose from") {
		t.Errorf("expected no options error, got %q", out)
	}
}

func TestCancelledPrompt(t *testing.T) {
	f := newFixture(t)

	out := f.run(handler.ActionAddDepartment)
	if out != "Cancelled.\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if f.router.State() != handler.AwaitingSelection {
		t.Errorf("expected %s, got %s", handler.AwaitingSelection, f.router.State())
	}
}

func TestRouter_Menu(t *testing.T) {
	f := newFixture(t)

	want := []string{
		handler.ActionViewDepartments,
		handler.ActionViewRoles,
		handler.ActionViewEmployees,
		handler.ActionViewBudget,
		handler.ActionAddDepartment,
		handler.ActionAddRole,
		handler.ActionAddEmployee,
		handler.ActionUpdateEmployeeRole,
		handler.ActionViewEmployeesByManager,
		handler.ActionViewEmployeesByDepartment,
		handler.ActionDeleteDepartment,
		handler.ActionDeleteRole,
		handler.ActionDeleteEmployee,
		handler.ActionExit,
	}

	menu := f.router.Menu()
	if len(menu) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(menu))
	}
	for i, label := range want {
		if menu[i].Label != label {
			t.Errorf("item %d: expected %q, got %q", i, label, menu[i].Label)
		}
	}
}

func TestRouter_UnsupportedAction(t *testing.T) {
	f := newFixture(t)

	out := f.run("Fire everyone")
	if out != "Unsupported action: Fire everyone\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if len(f.presenter.tables) != 0 {
		t.Errorf("expected no side effects")
	}
}

func TestRouter_RunUntilExit(t *testing.T) {
	f := newFixture(t)
	f.prompter.Push(
		handler.ActionAddDepartment, "Engineering",
		handler.ActionViewDepartments,
		handler.ActionExit,
	)

	if err := f.router.Run(f.ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.router.State() != handler.Terminated {
		t.Errorf("expected %s, got %s", handler.Terminated, f.router.State())
	}
	if f.closer.closed != 1 {
		t.Errorf("expected store to be closed once, got %d", f.closer.closed)
	}
	if len(f.presenter.tables) != 1 || len(f.presenter.tables[0].Rows) != 1 {
		t.Errorf("expected departments table with one row, got %v", f.presenter.tables)
	}
}

func TestRouter_AbortedMenuExits(t *testing.T) {
	f := newFixture(t)

	if err := f.router.Run(f.ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.router.State() != handler.Terminated {
		t.Errorf("expected %s, got %s", handler.Terminated, f.router.State())
	}
	if f.closer.closed != 1 {
		t.Errorf("expected store to be closed, got %d", f.closer.closed)
	}
}
