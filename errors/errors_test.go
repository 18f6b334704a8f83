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
				Phase:    PhaseEncode,
				Kind:     KindTypeMismatch,
				Path:     []string{"pose", "position", "x"},
				GoType:   "string",
				TypeName: "float64",
				Detail:   "cannot convert",
			},
			contains: []string{"[encode]", "type_mismatch", "pose.position.x", "string", "float64", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindUnderrun,
			},
			contains: []string{"[decode]", "underrun"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "read schema",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "read schema", "caused by", "underlying error"},
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
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindUnderrun,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindUnderrun}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindUnderrun}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindUnderrun}) {
		t.Error("Is should match kind-only target")
	}
	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUnderrun}) {
		t.Error("errors.Is should match")
	}
}

func TestWithPath(t *testing.T) {
	orig := OutOfBounds(PhaseAccess, []string{"[3]"}, 3, 2)
	got := WithPath(orig, "msg", "values")

	var e *Error
	if !errors.As(got, &e) {
		t.Fatalf("WithPath returned %T", got)
	}
	if strings.Join(e.Path, ".") != "msg.values.[3]" {
		t.Errorf("Path = %v", e.Path)
	}
	if len(orig.Path) != 1 {
		t.Errorf("original path modified: %v", orig.Path)
	}

	plain := errors.New("plain")
	if WithPath(plain, "x") != plain {
		t.Error("plain errors should pass through")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("msg", "name").
		GoType("string").
		TypeName("uint32").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint32", "string").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "msg" || err.Path[1] != "name" {
		t.Errorf("Path = %v, want [msg name]", err.Path)
	}
	if err.GoType != "string" || err.TypeName != "uint32" {
		t.Errorf("GoType=%v TypeName=%v", err.GoType, err.TypeName)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected uint32, got string" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseAccess, []string{"field"}, "int8", "string")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.TypeName != "string" || !strings.Contains(err.Detail, "int8") {
			t.Errorf("TypeName=%v Detail=%v", err.TypeName, err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseAccess, []string{"list"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("BoundExceeded", func(t *testing.T) {
		err := BoundExceeded(PhaseAccess, nil, 5, 4)
		if err.Kind != KindBoundExceeded {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBoundExceeded)
		}
		if !strings.Contains(err.Detail, "bound 4") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Underrun", func(t *testing.T) {
		err := Underrun(PhaseDecode, nil, 12, 4, 2)
		if err.Kind != KindUnderrun {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnderrun)
		}
		if err.Value != 12 {
			t.Errorf("Value = %v, want 12", err.Value)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseAccess, []string{"val"}, 300, "uint8")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := Duplicate(PhaseRegister, "type", "pkg/Point")
		if err.Kind != KindDuplicate || !strings.Contains(err.Error(), "pkg/Point") {
			t.Errorf("unexpected %v", err)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("Point.msg", 3, "unknown type")
		if err.Phase != PhaseParse || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("unexpected %v", err)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseRegister, "variant types")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})
}
