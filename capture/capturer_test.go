package capture

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

type address struct {
	City string
	Zip  string `log:"postal"`
}

type user struct {
	ID       int
	Name     string
	Password string `log:"-"`
	Address  *address
	Tags     []string
	secret   string
}

type redacted struct{ Token string }

func (r redacted) LogValue() any { return "***" }

type explosive struct{}

func (explosive) LogValue() any { panic("boom") }

type node struct {
	Name string
	Next *node
}

func TestCaptureScalars(t *testing.T) {
	c := NewDefaultCapturer()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	err := errors.New("failed")

	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"nil", nil, nil},
		{"int", 42, 42},
		{"bool", true, true},
		{"float", 3.5, 3.5},
		{"string", "text", "text"},
		{"time", ts, ts},
		{"duration", 2 * time.Second, 2 * time.Second},
		{"error", err, err},
		{"nil pointer", (*user)(nil), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.TryCapture(tt.value, false)
			if !ok {
				t.Fatal("TryCapture failed")
			}
			scalar, isScalar := got.(core.ScalarValue)
			if !isScalar {
				t.Fatalf("expected ScalarValue, got %T", got)
			}
			if scalar.Value != tt.want {
				t.Errorf("got %v, want %v", scalar.Value, tt.want)
			}
		})
	}
}

func TestCaptureBytesStayScalar(t *testing.T) {
	got, _ := NewDefaultCapturer().TryCapture([]byte("abc"), true)
	scalar, ok := got.(core.ScalarValue)
	if !ok {
		t.Fatalf("expected ScalarValue, got %T", got)
	}
	if !bytes.Equal(scalar.Value.([]byte), []byte("abc")) {
		t.Errorf("unexpected bytes: %v", scalar.Value)
	}
}

func TestCaptureSequence(t *testing.T) {
	got, _ := NewDefaultCapturer().TryCapture([]int{1, 2, 3}, false)
	seq, ok := got.(core.SequenceValue)
	if !ok {
		t.Fatalf("expected SequenceValue, got %T", got)
	}
	if seq.String() != "[1, 2, 3]" {
		t.Errorf("unexpected sequence: %s", seq)
	}
}

func TestCaptureCollectionLimit(t *testing.T) {
	got, _ := NewCapturer(5, 100, 2).TryCapture([]string{"a", "b", "c", "d"}, false)
	seq := got.(core.SequenceValue)
	if len(seq.Elements) != 3 {
		t.Fatalf("expected 2 elements and a marker, got %d", len(seq.Elements))
	}
	if seq.Elements[2].String() != "... (2 more)" {
		t.Errorf("unexpected marker: %s", seq.Elements[2])
	}
}

func TestCaptureDictionarySortedKeys(t *testing.T) {
	got, _ := NewDefaultCapturer().TryCapture(map[string]int{"b": 2, "a": 1, "c": 3}, false)
	dict, ok := got.(core.DictionaryValue)
	if !ok {
		t.Fatalf("expected DictionaryValue, got %T", got)
	}
	if dict.String() != "{a: 1, b: 2, c: 3}" {
		t.Errorf("unexpected dictionary: %s", dict)
	}
	if dict.Elements[0].Key.Value != "a" {
		t.Errorf("expected string key to stay raw, got %#v", dict.Elements[0].Key.Value)
	}
}

func TestCaptureDictionaryIntKeys(t *testing.T) {
	got, _ := NewDefaultCapturer().TryCapture(map[int]string{2: "two", 1: "one"}, false)
	dict := got.(core.DictionaryValue)
	if dict.Elements[0].Key.Value != 1 {
		t.Errorf("expected int key 1 first, got %#v", dict.Elements[0].Key.Value)
	}
}

func TestCaptureStructure(t *testing.T) {
	u := user{
		ID:       7,
		Name:     "alice",
		Password: "hunter2",
		Address:  &address{City: "Paris", Zip: "75001"},
		Tags:     []string{"admin"},
		secret:   "x",
	}

	got, ok := NewDefaultCapturer().TryCapture(u, true)
	if !ok {
		t.Fatal("TryCapture failed")
	}
	s, isStruct := got.(core.StructureValue)
	if !isStruct {
		t.Fatalf("expected StructureValue, got %T", got)
	}
	if s.TypeTag != "user" {
		t.Errorf("TypeTag = %q", s.TypeTag)
	}

	names := make([]string, 0, len(s.Properties))
	for _, p := range s.Properties {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"ID", "Name", "Address", "Tags"}) {
		t.Errorf("unexpected fields: %v", names)
	}

	addr, _ := s.Field("Address")
	nested, ok := addr.(core.StructureValue)
	if !ok {
		t.Fatalf("expected nested structure, got %T", addr)
	}
	if zip, ok := nested.Field("postal"); !ok || zip.String() != "75001" {
		t.Errorf("expected renamed postal field, got %v", zip)
	}
}

func TestCaptureStructWithoutDestructuring(t *testing.T) {
	a := address{City: "Oslo"}
	got, _ := NewDefaultCapturer().TryCapture(a, false)
	scalar, ok := got.(core.ScalarValue)
	if !ok {
		t.Fatalf("expected ScalarValue, got %T", got)
	}
	if scalar.Value != a {
		t.Errorf("expected the struct itself, got %v", scalar.Value)
	}
}

func TestCaptureLogValue(t *testing.T) {
	got, _ := NewDefaultCapturer().TryCapture(redacted{Token: "secret"}, true)
	if got.String() != "***" {
		t.Errorf("expected LogValue result, got %s", got)
	}
}

func TestCapturePassesPropertyValuesThrough(t *testing.T) {
	in := core.NewSequence(core.NewScalar(1))
	got, _ := NewDefaultCapturer().TryCapture(in, false)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("expected value unchanged, got %#v", got)
	}
}

func TestCaptureDepthLimit(t *testing.T) {
	n := &node{Name: "a"}
	n.Next = n

	got, ok := NewCapturer(3, 100, 100).TryCapture(n, true)
	if !ok {
		t.Fatal("TryCapture failed")
	}
	if !strings.Contains(got.String(), "<max depth reached>") {
		t.Errorf("expected depth marker, got %s", got)
	}
}

func TestCaptureStringTruncation(t *testing.T) {
	got, _ := NewCapturer(5, 4, 100).TryCapture("abcdefgh", false)
	if got.String() != "abcd..." {
		t.Errorf("unexpected truncation: %s", got)
	}
}

func TestCapturePanicIsReported(t *testing.T) {
	var buf bytes.Buffer
	selflog.Enable(&buf)
	defer selflog.Disable()

	got, ok := NewDefaultCapturer().TryCapture(explosive{}, false)
	if ok || got != nil {
		t.Fatalf("expected capture to fail, got %v, %v", got, ok)
	}
	if !strings.Contains(buf.String(), "[capture] panic") {
		t.Errorf("expected selflog report, got %q", buf.String())
	}
}

func TestRegisterScalarType(t *testing.T) {
	c := NewDefaultCapturer()
	c.RegisterScalarType(reflect.TypeOf(address{}))

	got, _ := c.TryCapture(address{City: "Rome"}, true)
	if _, ok := got.(core.ScalarValue); !ok {
		t.Errorf("expected registered type to stay scalar, got %T", got)
	}
}
