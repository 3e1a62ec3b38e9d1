package utils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func B2S(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func S2B(s string) []byte {
	const MaxInt32 = 1<<31 - 1
	return (*[MaxInt32]byte)(unsafe.Pointer((*reflect.StringHeader)(
		unsafe.Pointer(&s)).Data))[: len(s)&MaxInt32 : len(s)&MaxInt32]
}

// ISO 8859-15 to UTF-8
func Latin9ToUtf8(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), charmap.ISO8859_15.NewDecoder())
	d, e = io.ReadAll(reader)
	return
}

// UTF-8 to ISO 8859-15
func Utf8ToLatin9(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), charmap.ISO8859_15.NewEncoder())
	d, e = io.ReadAll(reader)
	return
}

// Latin9StrToUtf8 decodes an ISO 8859-15 string into UTF-8.
func Latin9StrToUtf8(s string) (d string, e error) {
	reader := transform.NewReader(strings.NewReader(s), charmap.ISO8859_15.NewDecoder())
	t, e := io.ReadAll(reader)
	if e != nil {
		return
	}
	d = B2S(t)
	return
}

// DecodeFieldValue normalizes a shapefile attribute to UTF-8. The survey data
// mixes properly tagged UTF-8 layers with raw Latin-9 bytes, so anything that
// fails UTF-8 validation is retried as ISO 8859-15.
func DecodeFieldValue(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if d, e := Latin9StrToUtf8(s); e == nil {
		return d
	}
	return PurifyForUtf8(s)
}

func PurifyForUtf8(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
