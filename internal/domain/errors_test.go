package domain_test

import (
	"errors"
	"testing"

	"github.com/neomorfeo/tourify/internal/domain"
)

func TestStorageUnavailableError_Error(t *testing.T) {
	err := &domain.StorageUnavailableError{Op: "get", Key: "tours", Err: errors.New("disk gone")}
	want := `storage unavailable: get "tours": disk gone`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestStorageUnavailableError_Unwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := error(&domain.StorageUnavailableError{Op: "set", Key: "tours", Err: cause})
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &domain.ValidationError{Field: "url", Reason: "is required"}
	want := "invalid url: is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &domain.TransitionError{Current: domain.StatusNew, Target: "Archivado"}
	want := `cannot move prospect from "Nuevo" to "Archivado"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
