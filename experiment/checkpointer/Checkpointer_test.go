package checkpointer

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/pomdpsearch/timestep"
)

type serializableInt int

func (s serializableInt) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(int(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *serializableInt) GobDecode(data []byte) error {
	var i int
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&i); err != nil {
		return err
	}
	*s = serializableInt(i)
	return nil
}

func TestNStepCheckpointsOnlyAtInterval(t *testing.T) {
	dir := t.TempDir()
	obj := serializableInt(7)
	enumerate := FilenameEnumerator(0, filepath.Join(dir, "state"), ".bin")
	n := NewNStep(3, &obj, enumerate)

	for i := 0; i < 7; i++ {
		step := ts.New(ts.Mid, 0, 1, 0, i)
		if err := n.Checkpoint(step); err != nil {
			t.Fatalf("Checkpoint(%d) error = %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	// Number 0, 3, and 6 are multiples of 3 within [0, 7).
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3", len(entries))
	}
}

func TestFilenameEnumeratorIncrements(t *testing.T) {
	next := FilenameEnumerator(5, "file", ".bin")
	if got, want := next(), "file6.bin"; got != want {
		t.Errorf("first call = %q, want %q", got, want)
	}
	if got, want := next(), "file7.bin"; got != want {
		t.Errorf("second call = %q, want %q", got, want)
	}
}

func TestFileTimerProducesDistinctNames(t *testing.T) {
	next := FileTimer("run", ".bin")
	a, b := next(), next()
	if a == b {
		t.Errorf("FileTimer produced identical names across calls: %q", a)
	}
}
