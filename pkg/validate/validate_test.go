package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/storefront/pkg/validate"
	"github.com/shopspring/decimal"
)

type registerInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"nullable,in=admin|seller|user"`
	Website  string `json:"website"  validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "jane@example.com", Password: "secret1", Role: "seller"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password to be required")
	}
	if _, ok := errs["role"]; ok {
		t.Error("nullable role must not be reported when empty")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "a@b.co", Password: "123456", Role: "root"})
	if _, ok := errs["role"]; !ok {
		t.Error("expected role to be rejected")
	}
}

func TestMinOnStringLength(t *testing.T) {
	errs := validate.Struct(registerInput{Email: "a@b.co", Password: "123"})
	if _, ok := errs["password"]; !ok {
		t.Error("expected short password to fail")
	}
}

type patchInput struct {
	Name  *string          `json:"name"  validate:"nullable,min=1,max=5"`
	Price *decimal.Decimal `json:"price" validate:"nullable,gte=0"`
	Qty   int              `json:"qty"   validate:"required,gte=1"`
	ID    string           `json:"id"    validate:"required,uuid"`
}

func TestPointerFieldsOnlyCheckedWhenPresent(t *testing.T) {
	errs := validate.Struct(&patchInput{Qty: 1, ID: "4c9f5b8e-2a1d-4b7e-9f3a-0d6c8e1b2a3f"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}

	long := "toolong"
	neg := decimal.NewFromInt(-1)
	errs = validate.Struct(&patchInput{Name: &long, Price: &neg, Qty: 1, ID: "nope"})
	for _, field := range []string{"name", "price", "id"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to fail, got %v", field, errs)
		}
	}
}
