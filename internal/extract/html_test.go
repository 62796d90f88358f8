package extract

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const curriculumPage = `<!DOCTYPE html>
<html>
<head><title>Plan</title><style>.a { color: red }</style></head>
<body>
<nav><a href="/">Inicio</a> <a href="/contacto">Contacto</a></nav>
<h1>Plan de estudios</h1>
<table>
  <tr><td>Bases de Datos Avanzadas</td><td>6</td></tr>
  <tr><td>Redes de Computadores</td><td>6</td></tr>
</table>
<script>var course = "Inteligencia Artificial";</script>
</body>
</html>`

func TestHTMLText(t *testing.T) {
	t.Parallel()

	t.Run("skips script and style content", func(t *testing.T) {
		t.Parallel()

		text, err := HTMLText(strings.NewReader(curriculumPage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(text, "Inteligencia Artificial") {
			t.Error("expected script text to be skipped")
		}
		if strings.Contains(text, "color: red") {
			t.Error("expected style text to be skipped")
		}
	})

	t.Run("emits one line per text node", func(t *testing.T) {
		t.Parallel()

		text, err := HTMLText(strings.NewReader(curriculumPage))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(text, "Redes de Computadores\n") {
			t.Errorf("expected a line for the table cell, got %q", text)
		}
	})
}

func TestHTMLTextThenFinalFilter(t *testing.T) {
	t.Parallel()

	text, err := HTMLText(strings.NewReader(curriculumPage))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := FinalFilter(Lines(text))
	want := []string{"Bases de Datos Avanzadas", "Redes de Computadores"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("courses mismatch (-want +got):\n%s", diff)
	}
}
