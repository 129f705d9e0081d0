package expr

import "encoding/binary"

// Program is a compiled expression: a flat instruction vector plus any
// string/quad payload words inlined directly after their introducing opcode.
type Program struct {
	Code []uint32
}

// emit appends one instruction and returns its index.
func (p *Program) emit(op Opcode, operand int32) int {
	p.Code = append(p.Code, encode(op, operand))
	return len(p.Code) - 1
}

// emitRaw appends a raw word (used for string payloads).
func (p *Program) emitRaw(word uint32) {
	p.Code = append(p.Code, word)
}

// insert splices an instruction in at idx, shifting everything at and after
// idx one word to the right. The compiler emits every operator after its
// operands (including NOT/NEGATE), so it does not call insert.
func (p *Program) insert(idx int, op Opcode, operand int32) {
	instr := encode(op, operand)
	p.Code = append(p.Code, 0)
	copy(p.Code[idx+1:], p.Code[idx:len(p.Code)-1])
	p.Code[idx] = instr
}

// patch rewrites the operand word of the instruction at idx in place,
// keeping its opcode. Used to backfill a forward jump offset once the
// length of the code it jumps over is known.
func (p *Program) patch(idx int, operand int32) {
	p.Code[idx] = encode(decodeOp(p.Code[idx]), operand)
}

// emitString packs s into 4-bytes-per-word little-endian payload words,
// preceded by OpLiteralString with the word count as its operand.
func (p *Program) emitString(s string) {
	words := packString(s)
	p.emit(OpLiteralString, int32(len(words)))
	for _, w := range words {
		p.emitRaw(w)
	}
}

func packString(s string) []uint32 {
	b := []byte(s)
	n := (len(b) + 3) / 4
	words := make([]uint32, n)
	padded := make([]byte, n*4)
	copy(padded, b)
	for i := 0; i < n; i++ {
		words[i] = binary.LittleEndian.Uint32(padded[i*4 : i*4+4])
	}
	return words
}

func unpackString(words []uint32, byteLen int) string {
	b := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[i*4:i*4+4], w)
	}
	if byteLen >= 0 && byteLen <= len(b) {
		b = b[:byteLen]
	} else {
		// no explicit byte length recorded: trim trailing NUL padding
		for len(b) > 0 && b[len(b)-1] == 0 {
			b = b[:len(b)-1]
		}
	}
	return string(b)
}
