package identity

import (
	"reflect"
	"strings"
	"testing"
)

func TestSeededIdentityIsReproducible(t *testing.T) {
	a := NewSeeded("en_US", 7, 1)
	b := NewSeeded("en_US", 7, 1)
	for i := 0; i < 5; i++ {
		idA := a.Generate(DefaultOptions())
		idB := b.Generate(DefaultOptions())
		if !reflect.DeepEqual(idA, idB) {
			t.Fatalf("call %d diverged:\n%+v\n%+v", i, idA, idB)
		}
	}
}

func TestOptionalBlocksOmitted(t *testing.T) {
	g := NewSeeded("en_US", 8, 1)
	opts := DefaultOptions()
	opts.IncludeFinancial = false
	opts.IncludeProfessional = false
	id := g.Generate(opts)
	if id.CreditCard != nil || id.CreditCardExpiry != nil || id.CreditCardCVV != nil || id.BankAccount != nil {
		t.Fatalf("financial block should be absent: %+v", id)
	}
	if id.Company != nil || id.JobTitle != nil || id.Website != nil {
		t.Fatalf("professional block should be absent: %+v", id)
	}
}

func TestFinancialBlockPresentByDefault(t *testing.T) {
	g := NewSeeded("en_US", 9, 1)
	id := g.Generate(DefaultOptions())
	if id.CreditCard == nil || id.BankAccount == nil {
		t.Fatalf("financial block missing with default options")
	}
	if len(*id.BankAccount) != 16 {
		t.Fatalf("bank account %q, want 16 digits", *id.BankAccount)
	}
	if id.Company == nil || id.JobTitle == nil || id.Website == nil {
		t.Fatalf("professional block missing with default options")
	}
	if !strings.HasPrefix(*id.Website, "https://") {
		t.Fatalf("website %q missing scheme", *id.Website)
	}
}

func TestAgeWithinBounds(t *testing.T) {
	g := NewSeeded("en_US", 10, 1)
	opts := DefaultOptions()
	opts.MinAge = 30
	opts.MaxAge = 40
	for i := 0; i < 20; i++ {
		id := g.Generate(opts)
		if id.Age < 30 || id.Age > 41 {
			t.Fatalf("age %d outside requested window", id.Age)
		}
	}
}

func TestEmailAndUsernameDeriveFromName(t *testing.T) {
	g := NewSeeded("en_US", 11, 1)
	for i := 0; i < 10; i++ {
		id := g.Generate(DefaultOptions())
		if !strings.Contains(id.Email, "@") {
			t.Fatalf("malformed email %q", id.Email)
		}
		local, _, _ := strings.Cut(id.Email, "@")
		lf := strings.ToLower(id.FirstName)
		ll := strings.ToLower(id.LastName)
		if !strings.Contains(local, lf) && !strings.Contains(local, ll) {
			t.Errorf("email local part %q unrelated to %s %s", local, id.FirstName, id.LastName)
		}
		if id.Username == "" {
			t.Fatalf("empty username")
		}
	}
}

func TestDocumentFormats(t *testing.T) {
	g := NewSeeded("en_US", 12, 1)
	id := g.Generate(DefaultOptions())
	if id.PassportNumber == nil || len(*id.PassportNumber) != 9 {
		t.Fatalf("passport %v, want 2 letters + 7 digits", id.PassportNumber)
	}
	if id.DriverLicense == nil || len(*id.DriverLicense) != 13 {
		t.Fatalf("driver license %v, want 1 letter + 12 digits", id.DriverLicense)
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	g := NewSeeded("xx_XX", 13, 1)
	if g.Locale() != "en_US" {
		t.Fatalf("locale %q, want en_US fallback", g.Locale())
	}
	id := g.Generate(DefaultOptions())
	if id.Locale != "en_US" {
		t.Fatalf("identity locale %q, want en_US", id.Locale)
	}
}

func TestGenderPin(t *testing.T) {
	g := NewSeeded("en_US", 14, 1)
	opts := DefaultOptions()
	opts.Gender = "female"
	for i := 0; i < 5; i++ {
		if id := g.Generate(opts); id.Gender != "female" {
			t.Fatalf("gender %q, want pinned female", id.Gender)
		}
	}
}
