package segment

import "unicode"

// Provides a translation from runes into segments. Letters that a 7-segment
// digit can't tell apart by case only have one entry.
var defaultRuneMap = map[rune]uint8{
	//   DPGFEDCBA
	' ':  0b00000000,
	'-':  0b01000000,
	'_':  0b00001000,
	'=':  0b01001000,
	'"':  0b00100010,
	'\'': 0b00000010,
	'[':  0b00111001,
	']':  0b00001111,
	'(':  0b00111001,
	')':  0b00001111,
	'0':  0b00111111,
	'1':  0b00000110,
	'2':  0b01011011,
	'3':  0b01001111,
	'4':  0b01100110,
	'5':  0b01101101,
	'6':  0b01111101,
	'7':  0b00000111,
	'8':  0b01111111,
	'9':  0b01101111,
	'A':  0b01110111,
	'b':  0b01111100,
	'C':  0b00111001,
	'c':  0b01011000,
	'd':  0b01011110,
	'E':  0b01111001,
	'F':  0b01110001,
	'G':  0b00111101,
	'H':  0b01110110,
	'h':  0b01110100,
	'I':  0b00110000,
	'i':  0b00010000,
	'J':  0b00011110,
	'L':  0b00111000,
	'n':  0b01010100,
	'O':  0b00111111,
	'o':  0b01011100,
	'P':  0b01110011,
	'q':  0b01100111,
	'r':  0b01010000,
	'S':  0b01101101,
	't':  0b01111000,
	'U':  0b00111110,
	'u':  0b00011100,
	'y':  0b01101110,
}

// CharWriter writes text into a Buffer, looking each rune up in RuneMap.
// A nil RuneMap means the built-in font.
type CharWriter struct {
	Buffer  *Buffer
	RuneMap map[rune]uint8 // optional, uses a default map if nil
}

// Pattern returns the segments for r. Unknown runes are blank.
func (w CharWriter) Pattern(r rune) uint8 {
	runes := w.RuneMap
	if runes == nil {
		runes = defaultRuneMap
	}
	if p, ok := runes[r]; ok {
		return p
	}
	if p, ok := runes[unicode.ToUpper(r)]; ok {
		return p
	}
	return runes[unicode.ToLower(r)]
}

// WriteCharAt writes one rune at digit.
func (w CharWriter) WriteCharAt(digit uint8, r rune) {
	w.Buffer.WritePatternAt(digit, w.Pattern(r))
}

// WriteDecimalPointAt turns the decimal point of digit on or off.
func (w CharWriter) WriteDecimalPointAt(digit uint8, on bool) {
	w.Buffer.SetDecimalPoint(digit, on)
}

// WriteStringAt writes s starting at digit pos, stopping at the end of the
// display. A '.' lights the decimal point of the digit before it instead of
// taking a digit of its own. It returns the number of runes of s shown,
// which is less than the rune count of s if the display ran out.
func (w CharWriter) WriteStringAt(pos uint8, s string) int {
	n := int(w.Buffer.NumDigits())
	written, shown := 0, 0
	for _, r := range s {
		if r == '.' && written > 0 {
			w.WriteDecimalPointAt(pos-1, true)
			shown++
			continue
		}
		if int(pos) >= n {
			break
		}
		if r == '.' {
			w.Buffer.WritePatternAt(pos, decimalPoint)
		} else {
			w.WriteCharAt(pos, r)
		}
		pos++
		written++
		shown++
	}
	return shown
}
