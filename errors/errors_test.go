package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseDispatch,
				Kind:    KindTypeMismatch,
				Path:    []string{"Car", "move", "speed"},
				GoType:  "string",
				WitType: "s32",
				Detail:  "cannot convert",
			},
			contains: []string{"[dispatch]", "type_mismatch", "Car.move.speed", "string", "s32", " - cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDeclare,
				Kind:  KindCollision,
			},
			contains: []string{"[declare]", "collision"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConstruct,
				Kind:   KindAllocation,
				Detail: "heap full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[construct]", "allocation", ": heap full", "caused by", "underlying error"},
		},
		{
			name: "wit type only",
			err: &Error{
				Phase:   PhaseEvent,
				Kind:    KindTypeMismatch,
				WitType: "bool",
			},
			contains: []string{"[event]", "WIT type bool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseAsync,
		Kind:  KindThreadCreation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the cause through Unwrap")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDeclare,
		Kind:  KindCollision,
		Path:  []string{"Car", "id"},
	}

	if !err.Is(&Error{Phase: PhaseDeclare, Kind: KindCollision}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseConstruct, Kind: KindCollision}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDeclare, Kind: KindMissingMember}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrCollision) {
		t.Error("errors.Is should match the collision sentinel")
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"depth at construct", DepthExceeded(PhaseConstruct, "Deep", 10, 9), ErrDepthExceeded},
		{"depth at declare", DepthExceeded(PhaseDeclare, "Deep", 10, 9), ErrDepthExceeded},
		{"allocation", AllocationFailed("Car", nil), ErrAllocation},
		{"thread creation", ThreadCreationFailed("Car.drive", nil), ErrThreadCreation},
		{"missing member", MissingMember("Elephant", "Moveable", "move"), ErrMissingMember},
		{"not alive from events", NotAlive(PhaseEvent, "Car"), ErrNotAlive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}

	if errors.Is(AllocationFailed("Car", nil), ErrThreadCreation) {
		t.Error("allocation must not match thread creation")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDispatch, KindTypeMismatch).
		Path("Car", "move").
		GoType("string").
		WitType("s32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "s32", "string").
		Build()

	if err.Phase != PhaseDispatch {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDispatch)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "Car" || err.Path[1] != "move" {
		t.Errorf("Path = %v, want [Car move]", err.Path)
	}
	if err.GoType != "string" || err.WitType != "s32" {
		t.Errorf("GoType=%v WitType=%v", err.GoType, err.WitType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected s32, got string" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Collision", func(t *testing.T) {
		err := Collision("Car", "position", "Vehicle")
		if err.Kind != KindCollision || !strings.Contains(err.Detail, "Vehicle") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("DepthExceeded", func(t *testing.T) {
		err := DepthExceeded(PhaseConstruct, "Deep", 10, 9)
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
		if !strings.Contains(err.Error(), "(9 levels)") {
			t.Errorf("message %q should name the limit", err.Error())
		}
	})

	t.Run("Arity", func(t *testing.T) {
		err := Arity(PhaseDispatch, []string{"Car", "move"}, 1, 2)
		if err.Kind != KindArity || err.Detail != "got 1 arguments, want 2" {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseView, "interface", "Flyable")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, `"Flyable"`) {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("ConstructorFailed", func(t *testing.T) {
		cause := errors.New("no fuel")
		err := ConstructorFailed("Car", cause)
		if !errors.Is(err, cause) {
			t.Error("constructor error should wrap its cause")
		}
	})

	t.Run("Panicked", func(t *testing.T) {
		err := Panicked(PhaseAsync, []string{"Car", "drive"}, "boom")
		if err.Kind != KindPanic || err.Value != "boom" {
			t.Errorf("unexpected error %v", err)
		}
	})
}
