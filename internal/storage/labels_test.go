package storage

import (
	"encoding/binary"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestLabelsRoundTrip(t *testing.T) {
	tests := [][]string{
		{},
		{"one"},
		{"b", "a", "b"},
		{"with \"quotes\"", "ünïcode", "comma,separated"},
	}

	for _, labels := range tests {
		encoded, err := EncodeLabels(labels)
		if err != nil {
			t.Fatalf("EncodeLabels(%v) error = %v", labels, err)
		}
		if got := DecodeLabels(encoded); !reflect.DeepEqual(got, labels) {
			t.Errorf("DecodeLabels(EncodeLabels(%v)) = %v", labels, got)
		}
	}
}

func TestEncodeLabels_Nil(t *testing.T) {
	got, err := EncodeLabels(nil)
	if err != nil || got != "[]" {
		t.Errorf("EncodeLabels(nil) = %q, %v; want [] nil", got, err)
	}
}

func TestDecodeLabels_Malformed(t *testing.T) {
	for _, raw := range []string{"", "null", "[1,2]", "{", `"str"`, "[broken"} {
		got := DecodeLabels(raw)
		if got == nil || len(got) != 0 {
			t.Errorf("DecodeLabels(%q) = %#v, want empty slice", raw, got)
		}
	}
}

func TestUpdateBuilder(t *testing.T) {
	b := newUpdateBuilder("notes")
	if !b.Empty() {
		t.Fatal("new builder is not empty")
	}

	b.Set("title", "x'); DROP TABLE notes; --").Set("order", 3)
	b.SetExpr("updated_at", "MAX(?, created_at)", int64(10))
	if b.Empty() {
		t.Fatal("builder with fields reports empty")
	}

	query, args := b.Build("id = ?", int64(7))
	wantQuery := `UPDATE "notes" SET "title" = ?, "order" = ?, "updated_at" = MAX(?, created_at) WHERE id = ?`
	if query != wantQuery {
		t.Errorf("Build() query = %q, want %q", query, wantQuery)
	}
	if strings.Contains(query, "DROP") {
		t.Error("Build() interpolated a value into the statement")
	}
	wantArgs := []any{"x'); DROP TABLE notes; --", 3, int64(10), int64(7)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("Build() args = %v, want %v", args, wantArgs)
	}
}

func TestUpdateBuilder_ExprOnlyIsEmpty(t *testing.T) {
	b := newUpdateBuilder("notes").SetExpr("updated_at", "?", 1)
	if !b.Empty() {
		t.Error("builder with only bookkeeping columns should be empty")
	}
}

func matchinfoBlob(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.NativeEndian.PutUint32(b[i*4:], v)
	}
	return b
}

func TestFTSRank(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want float64
	}{
		{
			name: "title hit",
			// 1 phrase, 2 columns; title: 1 of 2 hits, body: none
			blob: matchinfoBlob(1, 2, 1, 2, 1, 0, 0, 0),
			want: 1.0,
		},
		{
			name: "body hit",
			blob: matchinfoBlob(1, 2, 0, 0, 0, 1, 1, 1),
			want: 1.0,
		},
		{
			name: "two phrases",
			blob: matchinfoBlob(2, 2, 1, 1, 1, 0, 0, 0, 0, 0, 0, 2, 4, 2),
			want: 2.5,
		},
		{
			name: "truncated",
			blob: matchinfoBlob(1, 2, 1),
			want: 0,
		},
		{
			name: "empty",
			blob: nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ftsRank(tt.blob); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ftsRank() = %v, want %v", got, tt.want)
			}
		})
	}
}
