// Package fixture builds small binary workbooks in memory for tests, so no
// generated .xlsb file has to be checked in.
package fixture

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"testing"
)

// XLSBStrings is the shared string table of the workbook built by XLSB.
var XLSBStrings = []string{"Item", "Amount", "Due", "Widget"}

// XLSB returns an .xlsb workbook whose single sheet, named sheet, holds:
//
//	A1 "Item"    B1 "Amount"  C1 "Due"
//	A2 "Widget"  B2 12.5      C2 44941 (date style, 2023-01-15)
func XLSB(tb testing.TB, sheet string) []byte {
	tb.Helper()

	var wb biff12
	wb.rec(0x0183, nil) // WORKBOOK start
	wb.rec(0x018F, nil) // SHEETS start
	var sheetRec bytes.Buffer
	sheetRec.Write(le32(0))
	sheetRec.Write(le32(1))
	sheetRec.Write(encStr("rId1"))
	sheetRec.Write(encStr(sheet))
	wb.rec(0x019C, sheetRec.Bytes())
	wb.rec(0x0190, nil) // SHEETS end
	wb.rec(0x0184, nil) // WORKBOOK end

	var sst biff12
	counts := append(le32(uint32(len(XLSBStrings))), le32(uint32(len(XLSBStrings)))...)
	sst.rec(0x019F, counts)
	for _, s := range XLSBStrings {
		sst.rec(0x0013, append([]byte{0x00}, encStr(s)...))
	}
	sst.rec(0x01A0, nil)

	// xf[0] General, xf[1] built-in date format 14
	var styles biff12
	styles.rec(0x0296, nil)
	styles.rec(0x04E9, nil)
	styles.rec(0x002F, xf(0))
	styles.rec(0x002F, xf(14))
	styles.rec(0x04EA, nil)
	styles.rec(0x0297, nil)

	var ws biff12
	ws.rec(0x0181, nil) // WORKSHEET start
	ws.rec(0x0194, append(append(le32(0), le32(1)...), append(le32(0), le32(2)...)...))
	ws.rec(0x0191, nil) // SHEETDATA start
	ws.rec(0x0000, le32(0))
	ws.rec(0x0007, stringCell(0, 0))
	ws.rec(0x0007, stringCell(1, 1))
	ws.rec(0x0007, stringCell(2, 2))
	ws.rec(0x0000, le32(1))
	ws.rec(0x0007, stringCell(0, 3))
	ws.rec(0x0005, floatCell(1, 0, 12.5))
	ws.rec(0x0005, floatCell(2, 1, 44941))
	ws.rec(0x0192, nil) // SHEETDATA end
	ws.rec(0x0182, nil) // WORKSHEET end

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(name string, data []byte) {
		f, err := zw.Create(name)
		if err != nil {
			tb.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write(data); err != nil {
			tb.Fatalf("zip write %s: %v", name, err)
		}
	}
	add("xl/_rels/workbook.bin.rels", []byte(`<?xml version="1.0" encoding="UTF-8"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+
		`<Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.bin"/>`+
		`</Relationships>`))
	add("xl/workbook.bin", wb.Bytes())
	add("xl/sharedStrings.bin", sst.Bytes())
	add("xl/styles.bin", styles.Bytes())
	add("xl/worksheets/sheet1.bin", ws.Bytes())
	if err := zw.Close(); err != nil {
		tb.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// WriteXLSB writes the workbook built by XLSB to path.
func WriteXLSB(tb testing.TB, path, sheet string) {
	tb.Helper()
	if err := os.WriteFile(path, XLSB(tb, sheet), 0644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}

// biff12 accumulates BIFF12 records: a variable-length id, a 7-bit
// variable-length size and the payload.
type biff12 struct {
	bytes.Buffer
}

func (b *biff12) rec(id int, payload []byte) {
	if id < 0x80 {
		b.WriteByte(byte(id))
	} else {
		b.WriteByte(byte(id & 0xFF))
		b.WriteByte(byte(id >> 8))
	}
	n := len(payload)
	for {
		c := n & 0x7F
		n >>= 7
		if n > 0 {
			b.WriteByte(byte(c) | 0x80)
			continue
		}
		b.WriteByte(byte(c))
		break
	}
	b.Write(payload)
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// encStr encodes s as a 4-byte character count and UTF-16LE body.
func encStr(s string) []byte {
	runes := []rune(s)
	var b bytes.Buffer
	b.Write(le32(uint32(len(runes))))
	for _, r := range runes {
		b.Write(le16(uint16(r)))
	}
	return b.Bytes()
}

func xf(numFmtID uint16) []byte {
	p := append(le16(0), le16(numFmtID)...)
	return append(p, make([]byte, 8)...)
}

func stringCell(col, sstIndex uint32) []byte {
	p := append(le32(col), le32(0)...)
	return append(p, le32(sstIndex)...)
}

func floatCell(col, style uint32, v float64) []byte {
	p := append(le32(col), le32(style)...)
	bits := make([]byte, 8)
	binary.LittleEndian.PutUint64(bits, math.Float64bits(v))
	return append(p, bits...)
}
