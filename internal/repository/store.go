package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories объединяет репозитории, работающие через одно соединение или транзакцию
type Repositories struct {
	Departments DepartmentRepository
	Roles       RoleRepository
	Employees   EmployeeRepository
}

// Store - шлюз к хранилищу: репозитории вне транзакции и транзакционный запуск
type Store interface {
	Repositories() Repositories
	Transaction(ctx context.Context, fn func(repos Repositories) error) error
	Close() error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore создаёт хранилище поверх открытого соединения
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func newRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Departments: NewDepartmentRepository(db),
		Roles:       NewRoleRepository(db),
		Employees:   NewEmployeeRepository(db),
	}
}

func (s *gormStore) Repositories() Repositories {
	return newRepositories(s.db)
}

// Transaction выполняет fn в одной транзакции; ошибка из fn откатывает все изменения
func (s *gormStore) Transaction(ctx context.Context, fn func(repos Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
