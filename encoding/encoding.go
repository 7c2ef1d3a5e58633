// Package encoding detects the character encoding of text files and decodes
// them to UTF-8 for rasterizing.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding represents a character encoding with metadata
type Encoding struct {
	Name    string            // Display name
	ID      string            // Internal identifier
	Codec   encoding.Encoding // x/text codec (nil for UTF-8)
	Aliases []string          // Alternative names reported by chardet
	BOM     []byte            // Byte order mark stripped before decoding
}

// DetectionResult holds the result of encoding detection
type DetectionResult struct {
	Encoding   *Encoding
	Confidence int  // 0-100
	HasBOM     bool // Whether a BOM was detected
	Fallback   bool // chardet named an encoding we cannot decode; Latin-1 used instead
	Detected   string
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Encodings is the list of encodings Decode understands
var Encodings = []*Encoding{
	{Name: "UTF-8", ID: "utf-8", Aliases: []string{"utf8"}},
	{Name: "UTF-8 BOM", ID: "utf-8-bom", BOM: utf8BOM},
	{Name: "UTF-16 LE", ID: "utf-16-le", Codec: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16LE"}, BOM: utf16LEBOM},
	{Name: "UTF-16 BE", ID: "utf-16-be", Codec: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), Aliases: []string{"UTF-16BE"}, BOM: utf16BEBOM},
	{Name: "ISO-8859-1", ID: "iso-8859-1", Codec: charmap.ISO8859_1, Aliases: []string{"latin1", "Latin-1"}},
	{Name: "Windows-1252", ID: "windows-1252", Codec: charmap.Windows1252, Aliases: []string{"CP1252"}},
	{Name: "ISO-8859-15", ID: "iso-8859-15", Codec: charmap.ISO8859_15, Aliases: []string{"latin9", "Latin-9"}},
	{Name: "Shift-JIS", ID: "shift-jis", Codec: japanese.ShiftJIS, Aliases: []string{"Shift_JIS", "SJIS", "MS_Kanji"}},
	{Name: "EUC-JP", ID: "euc-jp", Codec: japanese.EUCJP},
	{Name: "GBK", ID: "gbk", Codec: simplifiedchinese.GBK, Aliases: []string{"GB2312", "GB-2312"}},
	{Name: "GB18030", ID: "gb18030", Codec: simplifiedchinese.GB18030},
	{Name: "EUC-KR", ID: "euc-kr", Codec: korean.EUCKR},
}

// GetEncodingByID returns an encoding by its ID
func GetEncodingByID(id string) *Encoding {
	for _, enc := range Encodings {
		if strings.EqualFold(enc.ID, id) {
			return enc
		}
	}
	return nil
}

// GetEncodingByName returns an encoding by name, ID or alias
func GetEncodingByName(name string) *Encoding {
	for _, enc := range Encodings {
		if strings.EqualFold(enc.Name, name) || strings.EqualFold(enc.ID, name) {
			return enc
		}
		for _, alias := range enc.Aliases {
			if strings.EqualFold(alias, name) {
				return enc
			}
		}
	}
	return nil
}

// Detect attempts to detect the encoding of the given data
func Detect(data []byte) *DetectionResult {
	// BOMs first (most reliable)
	for _, id := range []string{"utf-8-bom", "utf-16-be", "utf-16-le"} {
		enc := GetEncodingByID(id)
		if bytes.HasPrefix(data, enc.BOM) {
			return &DetectionResult{Encoding: enc, Confidence: 100, HasBOM: true, Detected: enc.Name}
		}
	}

	if utf8.Valid(data) {
		return &DetectionResult{Encoding: GetEncodingByID("utf-8"), Confidence: 100, Detected: "UTF-8"}
	}

	latin1 := GetEncodingByID("iso-8859-1")
	detected, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || detected == nil {
		// Latin-1 decodes any byte sequence
		return &DetectionResult{Encoding: latin1, Confidence: 50, Fallback: true}
	}

	if enc := GetEncodingByName(detected.Charset); enc != nil {
		return &DetectionResult{Encoding: enc, Confidence: detected.Confidence, Detected: detected.Charset}
	}
	return &DetectionResult{
		Encoding:   latin1,
		Confidence: detected.Confidence,
		Fallback:   true,
		Detected:   detected.Charset,
	}
}

// DecodeToUTF8 decodes data from the given encoding to UTF-8, stripping the
// encoding's BOM when present.
func DecodeToUTF8(data []byte, enc *Encoding) ([]byte, error) {
	if enc == nil {
		return data, nil
	}
	if len(enc.BOM) > 0 {
		data = bytes.TrimPrefix(data, enc.BOM)
	}
	if enc.Codec == nil {
		return data, nil
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.Codec.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", enc.Name, err)
	}
	return out, nil
}

// Decode detects the encoding of data and returns it as UTF-8 text with line
// endings normalized to \n.
func Decode(data []byte) (string, *DetectionResult, error) {
	res := Detect(data)
	out, err := DecodeToUTF8(data, res.Encoding)
	if err != nil {
		return "", res, err
	}
	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, res, nil
}
