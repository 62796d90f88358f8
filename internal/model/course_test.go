package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCourseName(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace but keeps casing", func(t *testing.T) {
		t.Parallel()

		got := NewCourseName("  Bases   de\tDatos ")
		if got.String() != "Bases de Datos" {
			t.Errorf("expected %q, got %q", "Bases de Datos", got.String())
		}
	})

	t.Run("key ignores case and spacing", func(t *testing.T) {
		t.Parallel()

		a := CourseName("Linear  Algebra")
		b := CourseName("linear algebra")
		if a.Key() != b.Key() {
			t.Errorf("expected equal keys, got %q and %q", a.Key(), b.Key())
		}
	})

	t.Run("drops empty names", func(t *testing.T) {
		t.Parallel()

		got := CourseNames([]string{"Cálculo I", "   ", "", "Física"})
		want := []CourseName{"Cálculo I", "Física"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("CourseNames() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Cálculo I", "Física"}, Strings(got)); diff != "" {
			t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
		}
	})
}
