package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/smfc-manager/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type migratorMock struct {
	mock.Mock
}

func (m *migratorMock) Up() error { return m.Called().Error(0) }
func (m *migratorMock) Steps(n int) error { return m.Called(n).Error(0) }
func (m *migratorMock) Migrate(version uint) error { return m.Called(version).Error(0) }
func (m *migratorMock) Force(version int) error { return m.Called(version).Error(0) }
func (m *migratorMock) Version() (uint, bool, error) {
	args := m.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func TestLookupCommand(t *testing.T) {
	if _, _, err := lookupCommand(nil); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for empty args, got %v", err)
	}
	if _, _, err := lookupCommand([]string{"seed"}); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error for unknown command, got %v", err)
	}
	_, name, err := lookupCommand([]string{" Migrate "})
	if err != nil || name != "goto" {
		t.Fatalf("expected migrate alias to resolve to goto, got %q err=%v", name, err)
	}
}

func TestRunUp_IgnoresNoChange(t *testing.T) {
	m := &migratorMock{}
	m.On("Up").Return(migrate.ErrNoChange).Once()

	if err := runUp(m, nil, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("expected no error on ErrNoChange, got %v", err)
	}
	m.AssertExpectations(t)
}

func TestRunDown_DefaultsToOneStep(t *testing.T) {
	m := &migratorMock{}
	m.On("Steps", -1).Return(nil).Once()
	m.On("Steps", -3).Return(errors.New("dirty database")).Once()

	if err := runDown(m, nil, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("runDown default: %v", err)
	}
	if err := runDown(m, []string{"3"}, &bytes.Buffer{}, logging.NewNop()); err == nil || !strings.Contains(err.Error(), "dirty database") {
		t.Fatalf("expected wrapped rollback error, got %v", err)
	}
	if err := runDown(m, []string{"0"}, &bytes.Buffer{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for zero steps")
	}
	m.AssertExpectations(t)
}

func TestRunVersion_PrintsState(t *testing.T) {
	m := &migratorMock{}
	m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
	m.On("Version").Return(uint(1), true, nil).Once()

	var out bytes.Buffer
	if err := runVersion(m, nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("runVersion nil version: %v", err)
	}
	if err := runVersion(m, nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("runVersion: %v", err)
	}
	want := "version: none\ndirty: false\nversion: 1\ndirty: true\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunForceAndGoto_ParseArguments(t *testing.T) {
	m := &migratorMock{}
	m.On("Force", 1).Return(nil).Once()
	m.On("Migrate", uint(1)).Return(nil).Once()

	logger := logging.NewNop()
	if err := runForce(m, []string{"1"}, nil, logger); err != nil {
		t.Fatalf("runForce: %v", err)
	}
	if err := runForce(m, []string{"-2"}, nil, logger); err == nil {
		t.Fatalf("expected negative force version to fail")
	}
	if err := runGoto(m, []string{"1"}, nil, logger); err != nil {
		t.Fatalf("runGoto: %v", err)
	}
	if err := runGoto(m, nil, nil, logger); err == nil {
		t.Fatalf("expected goto without target to fail")
	}
	m.AssertExpectations(t)
}

func TestNormalizeDBURL(t *testing.T) {
	raw := "postgres://u:p@db:5432/smfc?sslmode=disable"
	if got := normalizeDBURL(raw, false); got != raw {
		t.Fatalf("expected untouched url, got %q", got)
	}
	if got := normalizeDBURL(raw, true); !strings.Contains(got, "binary_parameters=yes") || !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("expected binary_parameters added, got %q", got)
	}
	explicit := "postgres://db/smfc?binary_parameters=no"
	if got := normalizeDBURL(explicit, true); got != explicit {
		t.Fatalf("expected explicit value kept, got %q", got)
	}
}
