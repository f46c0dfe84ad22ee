package feature

import (
	"context"
	"errors"
	"testing"

	"commerce-saas-be/internal/repository/contract"

	"github.com/google/uuid"
)

type stubOperation struct {
	required []string
}

func (s stubOperation) RequiredFeatures() []string { return s.required }

func newTestGate(t *testing.T) (*Gate, contract.OverrideRepository) {
	t.Helper()
	cache, _, store := newTestCache(t)
	return NewGate(cache, nopLogger{}), store
}

func TestGateCheckPasses(t *testing.T) {
	gate, _ := newTestGate(t)
	tenant := uuid.New()

	if err := gate.Check(context.Background(), &tenant, "Content.Blog", "Content.Blog.Comments"); err != nil {
		t.Fatalf("expected all default-enabled features to pass, got %v", err)
	}
}

func TestGateCheckReportsFirstDisabledInOrder(t *testing.T) {
	gate, store := newTestGate(t)
	tenant := uuid.New()

	for _, name := range []string{"Content.Blog.Comments", "Content.Blog"} {
		if _, err := store.Upsert(context.Background(), contract.UpsertOverrideParams{
			TenantId:    &tenant,
			FeatureName: name,
			IsEnabled:   boolPtr(false),
		}); err != nil {
			t.Fatal(err)
		}
	}

	err := gate.Check(context.Background(), &tenant, "Content.Blog", "Content.Blog.Comments")
	var denied *NotAvailableError
	if !errors.As(err, &denied) {
		t.Fatalf("expected NotAvailableError, got %v", err)
	}
	if denied.Feature != "Content.Blog" {
		t.Errorf("denied feature = %q, want first declared disabled name %q", denied.Feature, "Content.Blog")
	}
	if !errors.Is(err, ErrFeatureNotAvailable) {
		t.Error("NotAvailableError must unwrap to ErrFeatureNotAvailable")
	}
}

func TestGateCheckSkipsCoreNames(t *testing.T) {
	gate, store := newTestGate(t)
	tenant := uuid.New()

	// Even a hostile row for a core module cannot deny the operation.
	if _, err := store.Upsert(context.Background(), contract.UpsertOverrideParams{
		TenantId:    &tenant,
		FeatureName: "Core.Auth",
		IsEnabled:   boolPtr(false),
	}); err != nil {
		t.Fatal(err)
	}

	if err := gate.Check(context.Background(), &tenant, "Core.Auth"); err != nil {
		t.Fatalf("core names must bypass the gate, got %v", err)
	}
}

func TestGateExecuteShortCircuits(t *testing.T) {
	gate, store := newTestGate(t)
	tenant := uuid.New()

	if _, err := store.Upsert(context.Background(), contract.UpsertOverrideParams{
		TenantId:    &tenant,
		FeatureName: "Content.Blog",
		IsEnabled:   boolPtr(false),
	}); err != nil {
		t.Fatal(err)
	}

	ran := false
	err := gate.Execute(context.Background(), &tenant, stubOperation{required: []string{"Content.Blog"}}, func(context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("expected denial")
	}
	if ran {
		t.Error("business logic must not run when the gate denies")
	}

	other := uuid.New()
	err = gate.Execute(context.Background(), &other, stubOperation{required: []string{"Content.Blog.Comments"}}, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("expected pass for unrelated feature, got %v", err)
	}
	if !ran {
		t.Error("business logic should run when the gate passes")
	}
}
