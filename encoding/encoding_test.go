package encoding

import (
	"bytes"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

func TestGetEncodingByID(t *testing.T) {
	tests := []struct {
		id       string
		wantName string
		wantNil  bool
	}{
		{"utf-8", "UTF-8", false},
		{"UTF-8", "UTF-8", false},
		{"utf-8-bom", "UTF-8 BOM", false},
		{"utf-16-le", "UTF-16 LE", false},
		{"utf-16-be", "UTF-16 BE", false},
		{"iso-8859-1", "ISO-8859-1", false},
		{"windows-1252", "Windows-1252", false},
		{"shift-jis", "Shift-JIS", false},
		{"euc-jp", "EUC-JP", false},
		{"gbk", "GBK", false},
		{"gb18030", "GB18030", false},
		{"euc-kr", "EUC-KR", false},
		{"nonexistent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			enc := GetEncodingByID(tt.id)
			if tt.wantNil {
				if enc != nil {
					t.Errorf("GetEncodingByID(%q) = %v, want nil", tt.id, enc)
				}
				return
			}
			if enc == nil {
				t.Fatalf("GetEncodingByID(%q) = nil, want %q", tt.id, tt.wantName)
			}
			if enc.Name != tt.wantName {
				t.Errorf("GetEncodingByID(%q).Name = %q, want %q", tt.id, enc.Name, tt.wantName)
			}
		})
	}
}

func TestGetEncodingByName(t *testing.T) {
	tests := []struct {
		name    string
		wantID  string
		wantNil bool
	}{
		{"UTF-8", "utf-8", false},
		{"utf8", "utf-8", false},
		{"Shift_JIS", "shift-jis", false},
		{"SJIS", "shift-jis", false},
		{"latin1", "iso-8859-1", false},
		{"CP1252", "windows-1252", false},
		{"GB2312", "gbk", false},
		{"UTF-16LE", "utf-16-le", false},
		{"KOI8-R", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := GetEncodingByName(tt.name)
			if tt.wantNil {
				if enc != nil {
					t.Errorf("GetEncodingByName(%q) = %v, want nil", tt.name, enc.ID)
				}
				return
			}
			if enc == nil || enc.ID != tt.wantID {
				t.Errorf("GetEncodingByName(%q) = %v, want %q", tt.name, enc, tt.wantID)
			}
		})
	}
}

func TestDetectBOM(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		wantID string
	}{
		{"utf-8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8-bom"},
		{"utf-16 le bom", []byte{0xFF, 0xFE, 'h', 0}, "utf-16-le"},
		{"utf-16 be bom", []byte{0xFE, 0xFF, 0, 'h'}, "utf-16-be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Detect(tt.data)
			if res.Encoding.ID != tt.wantID {
				t.Errorf("Detect() = %q, want %q", res.Encoding.ID, tt.wantID)
			}
			if !res.HasBOM {
				t.Error("Detect() should report a BOM")
			}
		})
	}
}

func TestDetectUTF8(t *testing.T) {
	for _, s := range []string{"", "plain ascii", "héllo wörld", "日本語テキスト"} {
		res := Detect([]byte(s))
		if res.Encoding.ID != "utf-8" || res.Confidence != 100 || res.HasBOM {
			t.Errorf("Detect(%q) = %+v, want plain utf-8", s, res)
		}
	}
}

func TestDetectNeverNil(t *testing.T) {
	// Invalid UTF-8 always resolves to something decodable.
	res := Detect([]byte{0xC3, 0x28, 0xA0, 0xA1, 0xFF})
	if res.Encoding == nil {
		t.Fatal("Detect() returned nil encoding")
	}
	if _, err := DecodeToUTF8([]byte{0xC3, 0x28}, res.Encoding); err != nil {
		t.Errorf("DecodeToUTF8() with detected encoding failed: %v", err)
	}
}

func TestDecodeToUTF8(t *testing.T) {
	latin1, _ := charmap.ISO8859_1.NewEncoder().Bytes([]byte("café"))
	sjis, _ := japanese.ShiftJIS.NewEncoder().Bytes([]byte("日本"))
	utf16le, _ := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte("hi"))

	tests := []struct {
		name string
		data []byte
		id   string
		want string
	}{
		{"utf-8 passthrough", []byte("abc"), "utf-8", "abc"},
		{"utf-8 bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "utf-8-bom", "abc"},
		{"latin-1", latin1, "iso-8859-1", "café"},
		{"shift-jis", sjis, "shift-jis", "日本"},
		{"utf-16 le with bom", append([]byte{0xFF, 0xFE}, utf16le...), "utf-16-le", "hi"},
		{"utf-16 le without bom", utf16le, "utf-16-le", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeToUTF8(tt.data, GetEncodingByID(tt.id))
			if err != nil {
				t.Fatalf("DecodeToUTF8() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("DecodeToUTF8() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeToUTF8NilEncoding(t *testing.T) {
	data := []byte("raw")
	got, err := DecodeToUTF8(data, nil)
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("DecodeToUTF8(nil) = %q, %v", got, err)
	}
}

func TestDecode(t *testing.T) {
	text, res, err := Decode([]byte("one\r\ntwo\rthree\n"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if res.Encoding.ID != "utf-8" {
		t.Errorf("Decode() encoding = %q, want utf-8", res.Encoding.ID)
	}
	if text != "one\ntwo\nthree\n" {
		t.Errorf("Decode() = %q, want normalized line endings", text)
	}
}

func TestDecodeBOMFile(t *testing.T) {
	text, res, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "package main\n"...))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !res.HasBOM || text != "package main\n" {
		t.Errorf("Decode() = %q (bom=%v)", text, res.HasBOM)
	}
}
