package scan

import (
	"path/filepath"
	"testing"

	"bighole/internal/core/keynorm"
	"bighole/internal/services/lookup/domain"
)

func TestScanChunk_LineProvenance(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "eg.csv", []string{
		"fbid,a,b,phone",
		"42,x,y,0101234567",
		"7,x,y,0109999999",
		"42,x,y,0101234567",
	})

	vs := keynorm.Variants("0101234567", keynorm.KindPhone)
	ms, err := ScanChunk(path, domain.Chunk{Start: 1, End: 4}, vs)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("matches = %d, want 2", len(ms))
	}
	// raw line numbers include the header: data rows 1 and 3 are lines 2 and 4
	if ms[0].Line != 2 || ms[1].Line != 4 {
		t.Fatalf("lines = %d,%d; want 2,4", ms[0].Line, ms[1].Line)
	}
	if ms[0].File != path {
		t.Fatalf("file = %q", ms[0].File)
	}
}

func TestScanChunk_RespectsRange(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "eg.csv", []string{
		"fbid,a,b,phone",
		"1,x,y,0100000001",
		"2,x,y,0100000001",
		"3,x,y,0100000001",
		"4,x,y,0100000001",
	})
	vs := keynorm.Variants("0100000001", keynorm.KindPhone)

	ms, err := ScanChunk(path, domain.Chunk{Start: 2, End: 4}, vs)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("matches = %d, want 2", len(ms))
	}
	if ms[0].Record.Fbid != "2" || ms[1].Record.Fbid != "3" {
		t.Fatalf("got rows %s,%s; want 2,3", ms[0].Record.Fbid, ms[1].Record.Fbid)
	}

	// chunk end past EOF stops at natural end of input
	ms, err = ScanChunk(path, domain.Chunk{Start: 3, End: 99}, vs)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("overlong chunk matches = %d, want 2", len(ms))
	}
}

func TestScanChunk_ChunkedEqualsWholeFile(t *testing.T) {
	dir := t.TempDir()
	lines := numberedRows(53)
	path := writeCorpusFile(t, dir, "big.csv", lines)
	needle := keynorm.Variants("0000000017", keynorm.KindPhone)

	whole, err := ScanChunk(path, domain.Chunk{Start: 1, End: 54}, needle)
	if err != nil {
		t.Fatal(err)
	}

	chunks, err := Plan(path, 7)
	if err != nil {
		t.Fatal(err)
	}
	var pieced []domain.Match
	for _, c := range chunks {
		ms, err := ScanChunk(path, c, needle)
		if err != nil {
			t.Fatal(err)
		}
		pieced = append(pieced, ms...)
	}

	if len(whole) != len(pieced) {
		t.Fatalf("whole=%d pieced=%d", len(whole), len(pieced))
	}
	for i := range whole {
		if whole[i] != pieced[i] {
			t.Fatalf("mismatch at %d: %+v vs %+v", i, whole[i], pieced[i])
		}
	}
}

func TestScanChunk_MissingFile(t *testing.T) {
	ms, err := ScanChunk(filepath.Join(t.TempDir(), "gone.csv"), domain.Chunk{Start: 1, End: 2},
		keynorm.Variants("42", keynorm.KindFbid))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(ms) != 0 {
		t.Fatalf("matches = %d, want 0", len(ms))
	}
}

func TestScanChunk_InvalidUTF8AndShortRows(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "dirty.csv", []string{
		"fbid,a,b,phone",
		"42,x",  // short row, phone column absent
		"43,\xff\xfe,y,0101234567", // invalid bytes elsewhere in the row
	})

	ms, err := ScanChunk(path, domain.Chunk{Start: 1, End: 3}, keynorm.Variants("0101234567", keynorm.KindPhone))
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 1 || ms[0].Record.Fbid != "43" {
		t.Fatalf("matches = %+v, want one row 43", ms)
	}
}
