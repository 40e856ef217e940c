package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shapeme/internal/shape"
)

func TestWrite(t *testing.T) {
	set := shape.NewSet(4)
	err := set.Load([]shape.Shape{
		{
			Geom:    shape.Triangle{A: shape.Point{X: 1, Y: 2}, B: shape.Point{X: 30, Y: 4}, C: shape.Point{X: 5, Y: 19}},
			Color:   shape.Color{R: 0xff, G: 0x10, B: 0x00},
			Opacity: 45,
		},
		{
			Geom:    shape.Circle{Center: shape.Point{X: 10, Y: 9}, Radius: 7},
			Color:   shape.Color{R: 0x01, G: 0x02, B: 0xab},
			Opacity: 90,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, set, shape.Bounds{W: 40, H: 20}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`<polygon points="0,0 39,0 39,19 0,19" style="fill:#000000;stroke:#000000;stroke-width:0;fill-opacity:1.00;"/>`,
		`<polygon points="1,2 30,4 5,19" style="fill:#ff1000;stroke:#000000;stroke-width:0;fill-opacity:0.45;"/>`,
		`<circle cx="10" cy="9" r="7" style="fill:#0102ab;stroke:#000000;stroke-width:0;fill-opacity:0.90;"/>`,
		`viewBox="0 0 40 20"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
	if strings.Index(out, "<polygon points=\"1,2") > strings.Index(out, "<circle") {
		t.Error("shapes not in storage order")
	}

	// well-formed XML with one element per shape plus the background
	dec := xml.NewDecoder(strings.NewReader(out))
	dec.Strict = false
	elems := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && (se.Name.Local == "polygon" || se.Name.Local == "circle") {
			elems++
		}
	}
	if elems != 3 {
		t.Fatalf("found %d shape elements, want 3", elems)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	if err := Write(failWriter{}, shape.NewSet(1), shape.Bounds{W: 2, H: 2}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := Save(path, shape.NewSet(1), shape.Bounds{W: 3, H: 3}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "</svg>\n") {
		t.Fatal("file not terminated")
	}
}
