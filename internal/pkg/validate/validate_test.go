package validate

import (
	"testing"

	"campus-jobs/internal/pkg/errs"
)

type signup struct {
	Username string `json:"username" validate:"required,min=2,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Username: "a", Email: "nope", Rating: 3})
	if !errs.Is(err, errs.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	fields := Fields(err)
	if fields["username"] != "must be at least 2" {
		t.Fatalf("unexpected username message %q", fields["username"])
	}
	if fields["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", fields["email"])
	}
	if _, ok := fields["rating"]; ok {
		t.Fatalf("rating should be valid")
	}
}

func TestStructAcceptsValidPayload(t *testing.T) {
	if err := Struct(signup{Username: "ab", Email: "a@b.co", Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
