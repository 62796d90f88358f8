package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	t.Parallel()

	t.Run("keeps course-like lines in first-seen order", func(t *testing.T) {
		t.Parallel()

		raw := strings.Join([]string{
			"Cookies policy and privacy",
			"Fundamentos de Programación",
			"  Fundamentos   de programación ",
			"Módulo 1: Formación básica",
			"2024 - 2025",
			"Física",
			strings.Repeat("prose ", 20),
			"Cálculo",
			"Sistemas Operativos",
		}, "\n")

		got := Lines(raw)
		want := []string{"Fundamentos de Programación", "Sistemas Operativos"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects english site furniture", func(t *testing.T) {
		t.Parallel()

		got := Lines("Contact us today\nSign in to the portal\nOperating Systems")
		want := []string{"Operating Systems"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects contact and login lines", func(t *testing.T) {
		t.Parallel()

		got := Lines("Contact the admissions office\nLogin to the campus portal\nRedes de Computadores")
		want := []string{"Redes de Computadores"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects punctuation-only lines", func(t *testing.T) {
		t.Parallel()

		if got := Lines("----- ***** -----\n12 / 34 / 56"); len(got) != 0 {
			t.Errorf("expected no lines, got %v", got)
		}
	})

	t.Run("caps the number of lines", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		for i := range MaxLines + 50 {
			fmt.Fprintf(&b, "Asignatura numero %d\n", i)
		}
		if got := Lines(b.String()); len(got) != MaxLines {
			t.Errorf("expected %d lines, got %d", MaxLines, len(got))
		}
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		t.Parallel()

		if got := Lines(""); len(got) != 0 {
			t.Errorf("expected no lines, got %v", got)
		}
	})
}
