package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"KioskApp/app/config"
	"KioskApp/app/models"
)

// ESC/POS command bytes
const (
	escByte byte = 0x1B
	gsByte  byte = 0x1D
)

// Receipt layout constants. The price column pads against a 30 character
// base and the totals block right-aligns in a 40 character field, matching
// the printer's 42 column paper.
const (
	priceColumnWidth  = 30
	totalsColumnWidth = 40
	dividerWidth      = 42
)

// ReceiptEncoder turns a finished order into the exact ESC/POS byte stream
// the thermal printer expects. Encoding is deterministic: the same order,
// order number and store identity always produce the same bytes.
type ReceiptEncoder struct {
	store     config.StoreConfig
	receiptQR bool
}

// NewReceiptEncoder creates an encoder for one store identity
func NewReceiptEncoder(store config.StoreConfig, receiptQR bool) *ReceiptEncoder {
	return &ReceiptEncoder{store: store, receiptQR: receiptQR}
}

// Encode renders the full receipt command stream for an order
func (e *ReceiptEncoder) Encode(order models.Order, orderNumber int) []byte {
	buf := new(bytes.Buffer)

	// Header: reset formatting, centered store identity.
	buf.Write([]byte{escByte, '!', 0})
	buf.Write([]byte{escByte, 'a', '1'})
	writeASCIILine(buf, e.store.Name)
	writeASCIILine(buf, e.store.Address1)
	writeASCIILine(buf, e.store.Address2)
	writeASCIILine(buf, e.store.Phone)

	// Time and date, left justified.
	buf.Write([]byte{escByte, 'a', '0'})
	writeASCIILine(buf, "   "+order.PlacedAt.Format("15:04:05"))
	writeASCIILine(buf, "   "+order.PlacedAt.Format("01/02/2006"))

	// Order number in double height.
	buf.Write([]byte{escByte, '!', 16})
	writeASCIILine(buf, fmt.Sprintf("order number:  %d", orderNumber))
	buf.Write([]byte{escByte, '!', 0})

	writeASCIILine(buf, strings.Repeat("-", dividerWidth))

	for _, item := range order.Items {
		price := "$" + item.UnitPrice.StringFixed(2)
		line := fmt.Sprintf("%d %s%s", item.Quantity, item.Name, padLeft(price, priceColumnWidth-len(item.Name)))
		writeASCIILine(buf, line)
		for _, mod := range item.Modifiers {
			writeASCIILine(buf, "   + "+mod.Description)
		}
	}

	writeASCIILine(buf, strings.Repeat("-", dividerWidth))

	// Totals, right justified; the total line in double height.
	buf.Write([]byte{escByte, 'a', '2'})
	writeASCIILine(buf, padLeft("Subtotal: $"+order.Subtotal.StringFixed(2), totalsColumnWidth))
	writeASCIILine(buf, padLeft("Tax: $"+order.Tax.StringFixed(2), totalsColumnWidth))
	buf.Write([]byte{escByte, '!', 16})
	writeASCIILine(buf, padLeft("Total: $"+order.Total.StringFixed(2), totalsColumnWidth))
	buf.Write([]byte{escByte, '!', 0})

	buf.Write([]byte{escByte, 'a', '1'})
	writeASCIILine(buf, "*** Thank you! ***")

	// Feed past the print head before cutting.
	buf.WriteString("\n\n\n")

	if e.receiptQR {
		if err := appendQR(buf, fmt.Sprintf("order:%d", orderNumber)); err != nil {
			// A failed QR never loses the receipt; print a placeholder.
			writeASCIILine(buf, "[ QR unavailable ]")
		}
	}

	buf.Write([]byte{gsByte, 'V', 1})
	buf.Write([]byte{gsByte, 'V', 0})

	return buf.Bytes()
}

// writeASCIILine writes text as a newline-terminated ASCII line, replacing
// anything the printer's base character set cannot carry.
func writeASCIILine(buf *bytes.Buffer, text string) {
	for _, r := range text {
		if r < 128 {
			buf.WriteByte(byte(r))
		} else {
			buf.WriteByte(' ')
		}
	}
	buf.WriteByte('\n')
}

// padLeft left-pads s with spaces to width. Strings already at or past the
// width are returned unchanged.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// appendQR renders content as a QR module grid and appends it as a GS v 0
// raster block, each module scaled to a 4x4 dot square.
func appendQR(buf *bytes.Buffer, content string) error {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	const scale = 4
	grid := code.Bitmap()
	modules := len(grid)
	width := modules * scale
	widthBytes := (width + 7) / 8
	height := modules * scale

	buf.WriteByte('\n')
	buf.Write([]byte{gsByte, 'v', '0', 0})
	buf.WriteByte(byte(widthBytes % 256))
	buf.WriteByte(byte(widthBytes / 256))
	buf.WriteByte(byte(height % 256))
	buf.WriteByte(byte(height / 256))

	for row := 0; row < modules; row++ {
		rowBytes := make([]byte, widthBytes)
		for col := 0; col < modules; col++ {
			if !grid[row][col] {
				continue
			}
			for dot := 0; dot < scale; dot++ {
				x := col*scale + dot
				rowBytes[x/8] |= 1 << uint(7-x%8)
			}
		}
		for repeat := 0; repeat < scale; repeat++ {
			buf.Write(rowBytes)
		}
	}

	buf.WriteByte('\n')
	return nil
}
