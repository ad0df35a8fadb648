package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokens(t *testing.T) {
	got := Tokens("a b c d qu q d e fff f")
	want := []rune{'a', 'b', 'c', 'd', 'q', 'q', 'd', 'e', 'f'}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad tokens; diff (-got +want)\n%s", diff)
	}
}

func TestTokensFoldsCaseAndRejectsLongTokens(t *testing.T) {
	got := Tokens("A\tQu\n  qua  b\n\nqz x")
	want := []rune{'a', 'q', 'b', 'x'}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Bad tokens; diff (-got +want)\n%s", diff)
	}
}

func TestNearestSquare(t *testing.T) {
	testCases := map[int]int{
		0:  0,
		1:  1,
		2:  1,
		3:  2,
		5:  2,
		7:  3,
		8:  3,
		10: 3,
		12: 3,
		13: 4,
		15: 4,
		99: 10,
	}
	for n, want := range testCases {
		if got := NearestSquare(n); got != want {
			t.Errorf("NearestSquare(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestBoardValid(t *testing.T) {
	g, err := Board(strings.NewReader("a b c\nd qu f\ng h j\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Size != 3 {
		t.Errorf("Size = %d, want 3", g.Size)
	}
	if diff := cmp.Diff(g.Tiles, []rune("abcdqfghj")); diff != "" {
		t.Errorf("Bad tiles; diff (-got +want)\n%s", diff)
	}
}

func TestBoardInvalidShape(t *testing.T) {
	_, err := Board(strings.NewReader("a b c d e f g h i j"))
	if err == nil {
		t.Fatalf("Loading a 10 tile board succeeded")
	}
	if !IsKind(err, KindInvalidBoard) {
		t.Errorf("Got error %v, want kind %v", err, KindInvalidBoard)
	}
	if IsKind(err, KindIO) {
		t.Errorf("Shape error also reports %v", KindIO)
	}
	if !strings.Contains(err.Error(), "3x3") {
		t.Errorf("Error %q does not suggest the nearest square", err.Error())
	}
}

func TestBoardSkippedTokensCountTowardShape(t *testing.T) {
	// "fff" is dropped, leaving 9 tiles.
	g, err := Board(strings.NewReader("a b c d qu q d e fff f"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Size != 3 {
		t.Errorf("Size = %d, want 3", g.Size)
	}
}

func TestBoardEmpty(t *testing.T) {
	g, err := Board(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Size != 0 || len(g.Tiles) != 0 {
		t.Errorf("Got %+v, want an empty board", g)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestBoardReadFailure(t *testing.T) {
	_, err := Board(failingReader{})
	if !IsKind(err, KindIO) {
		t.Fatalf("Got error %v, want kind %v", err, KindIO)
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Error %q does not carry the cause", err.Error())
	}
}

func TestBoardFromFileMissing(t *testing.T) {
	_, err := BoardFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !IsKind(err, KindIO) {
		t.Fatalf("Got error %v, want kind %v", err, KindIO)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Error %v does not wrap os.ErrNotExist", err)
	}
}

func TestBoardFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	if err := os.WriteFile(path, []byte("q a\nt s\n"), 0644); err != nil {
		t.Fatalf("Error writing board: %v", err)
	}

	g, err := BoardFromFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(g.Tiles, []rune("qats")); diff != "" {
		t.Errorf("Bad tiles; diff (-got +want)\n%s", diff)
	}
}

func TestDictionary(t *testing.T) {
	words, err := Dictionary(strings.NewReader("a an Ant\ncart  carton\n\tox zoo"), DefaultMinWordLength)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"ant", "cart", "carton", "zoo"}
	if diff := cmp.Diff(words, want); diff != "" {
		t.Errorf("Bad words; diff (-got +want)\n%s", diff)
	}
}

func TestDictionaryFromPathLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("hello\nany\nab\n"), 0644); err != nil {
		t.Fatalf("Error writing dictionary: %v", err)
	}

	words, err := DictionaryFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(words, []string{"hello", "any"}); diff != "" {
		t.Errorf("Bad words; diff (-got +want)\n%s", diff)
	}

	words, err = DictionaryFromPath(context.Background(), path, WithMinLength(3))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(words, []string{"hello"}); diff != "" {
		t.Errorf("Bad words with min length 3; diff (-got +want)\n%s", diff)
	}
}

func TestDictionaryFromPathMissing(t *testing.T) {
	_, err := DictionaryFromPath(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if !IsKind(err, KindIO) {
		t.Errorf("Got error %v, want kind %v", err, KindIO)
	}
}

type fakeObjects struct {
	objects map[string]string
	opened  []string
}

func (f *fakeObjects) NewObjectReader(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	f.opened = append(f.opened, bucket+"/"+object)
	data, ok := f.objects[bucket+"/"+object]
	if !ok {
		return nil, errors.New("object does not exist")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func TestDictionaryFromPathGCS(t *testing.T) {
	objs := &fakeObjects{
		objects: map[string]string{
			"dicts/en/words.txt": "quat quit qi",
		},
	}

	words, err := DictionaryFromPath(context.Background(), "gs://dicts/en/words.txt", WithObjectReader(objs))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff(words, []string{"quat", "quit"}); diff != "" {
		t.Errorf("Bad words; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(objs.opened, []string{"dicts/en/words.txt"}); diff != "" {
		t.Errorf("Bad objects opened; diff (-got +want)\n%s", diff)
	}
}

func TestDictionaryFromPathGCSErrors(t *testing.T) {
	objs := &fakeObjects{}

	testCases := []struct {
		name string
		path string
		opts []DictionaryOption
	}{
		{"no store", "gs://dicts/words.txt", nil},
		{"no object", "gs://dicts", []DictionaryOption{WithObjectReader(objs)}},
		{"trailing slash", "gs://dicts/", []DictionaryOption{WithObjectReader(objs)}},
		{"missing object", "gs://dicts/words.txt", []DictionaryOption{WithObjectReader(objs)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DictionaryFromPath(context.Background(), tc.path, tc.opts...)
			if !IsKind(err, KindIO) {
				t.Errorf("Got error %v, want kind %v", err, KindIO)
			}
		})
	}
}

func TestIsKindOnForeignErrors(t *testing.T) {
	if IsKind(nil, KindIO) {
		t.Errorf("IsKind(nil) = true")
	}
	if IsKind(errors.New("plain"), KindIO) {
		t.Errorf("IsKind(plain error) = true")
	}
}

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk on fire")

	testCases := []struct {
		err  *Error
		want string
	}{
		{NewError(KindIO, "while reading board", cause), "IO error: while reading board: disk on fire"},
		{NewError(KindInvalidBoard, "board has 3 tiles", nil), "Invalid board: board has 3 tiles"},
	}

	for _, tc := range testCases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
		if got := fmt.Sprintf("%v", tc.err); got != tc.want {
			t.Errorf("Sprintf(%%v) = %q, want %q", got, tc.want)
		}
	}
}
