// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"

	"manero/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func value[T any](args mock.Arguments, index int) T {
	var zero T
	if v, ok := args.Get(index).(T); ok {
		return v
	}

	return zero
}

// baseRepository mocks the generic repository.Repository methods.
type baseRepository[E any] struct {
	mock.Mock
}

func (m *baseRepository[E]) Exists(ctx context.Context, criteria repository.Criteria) (bool, error) {
	ret := m.MethodCalled("Exists", ctx, criteria)

	return value[bool](ret, 0), ret.Error(1)
}

func (m *baseRepository[E]) Create(ctx context.Context, entity *E) error {
	return m.MethodCalled("Create", ctx, entity).Error(0)
}

func (m *baseRepository[E]) Read(ctx context.Context, criteria repository.Criteria) (*E, error) {
	ret := m.MethodCalled("Read", ctx, criteria)

	return value[*E](ret, 0), ret.Error(1)
}

func (m *baseRepository[E]) ReadAll(ctx context.Context, criteria repository.Criteria) ([]*E, error) {
	ret := m.MethodCalled("ReadAll", ctx, criteria)

	return value[[]*E](ret, 0), ret.Error(1)
}

func (m *baseRepository[E]) Update(ctx context.Context, entity *E) error {
	return m.MethodCalled("Update", ctx, entity).Error(0)
}

func (m *baseRepository[E]) Delete(ctx context.Context, criteria repository.Criteria) (bool, error) {
	ret := m.MethodCalled("Delete", ctx, criteria)

	return value[bool](ret, 0), ret.Error(1)
}

type expecter interface {
	Test(t mock.TestingT)
	AssertExpectations(t mock.TestingT) bool
}

// register binds the mock to t and asserts its expectations on cleanup.
func register(t testingT, m expecter) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
