package linearblock

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathanhack/ldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
)

// Systemic holds the systematic generator matrix G derived from H along
// with the column ordering that maps between the systematic form and the
// original H column order.
type Systemic struct {
	HColumnOrder []int
	G            mat.SparseMat
}

// LinearBlock pairs the original H (parity) matrix with its systemic
// generator. H is what decoders consume; Processing is what encoding
// needs.
type LinearBlock struct {
	H          mat.SparseMat
	Processing *Systemic
}

// for JSON unmarshalling, SparseMat is an interface so concrete types are needed
type systemic struct {
	HColumnOrder []int
	G            mat.CSRMatrix
}
type linearblock struct {
	H          mat.CSRMatrix
	Processing *systemic
}

// UnmarshalJSON is needed because LinearBlock holds mat.SparseMat
// interfaces which require concrete types to decode into.
func (l *LinearBlock) UnmarshalJSON(bytes []byte) error {
	var lb linearblock
	err := json.Unmarshal(bytes, &lb)
	if err != nil {
		return err
	}

	l.H = &lb.H
	if lb.Processing == nil {
		return nil
	}

	l.Processing = &Systemic{
		HColumnOrder: lb.Processing.HColumnOrder,
		G:            &lb.Processing.G,
	}

	return nil
}

// Encode takes in a message and returns the codeword in the original H
// column order.
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	G := l.Processing.G
	rows, cols := G.Dims()
	if message.Len() != rows {
		panic(fmt.Sprintf("message length == %v is required but found %v", rows, message.Len()))
	}

	codeword = mat.DOKVec(cols)
	codeword.MulMat(message, G)

	return ToNonSystematic(codeword, l.Processing.HColumnOrder)
}

// Decode extracts the message bits from a codeword. Note this is pure
// bit extraction, it assumes the codeword is already error free (run a
// decoder such as beliefprop first).
func (l *LinearBlock) Decode(codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), codeword.Len()))
	}

	ml := l.MessageLength()

	codeword = ToSystematic(codeword, l.Processing.HColumnOrder)
	return codeword.Slice(0, ml)
}

// ToSystematic reorders a codeword from the original H column order into
// the systematic order (message bits first).
func ToSystematic(codeword mat.SparseVector, ordering []int) mat.SparseVector {
	if len(ordering) > 0 && codeword.Len() != len(ordering) {
		panic("vector length must equal ordering length")
	}
	result := mat.DOKVec(codeword.Len())

	for c, c1 := range ordering {
		result.Set(c, codeword.At(c1))
	}

	return result
}

// ToNonSystematic reorders a systematic codeword back into the original
// H column order.
func ToNonSystematic(codeword mat.SparseVector, ordering []int) mat.SparseVector {
	if len(ordering) > 0 && codeword.Len() != len(ordering) {
		panic("vector length must equal ordering length")
	}
	result := mat.DOKVec(codeword.Len())

	for c, c1 := range ordering {
		result.Set(c1, codeword.At(c))
	}

	return result
}

// Syndrome returns H*codeword over GF(2); all zeros means a valid codeword.
func (l *LinearBlock) Syndrome(codeword mat.SparseVector) (syndrome mat.SparseVector) {
	syndrome = mat.CSRVec(l.ParitySymbols())
	syndrome.MatMul(l.H, codeword)
	return
}

// MessageLength returns the number of message bits (k).
func (l *LinearBlock) MessageLength() int {
	k, _ := l.Processing.G.Dims()
	return k
}

// ParitySymbols returns the number of parity checks (m).
func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}

// CodewordLength returns the codeword size (n).
func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}

// CodeRate returns k/n.
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

// Validate tests G*H.T == 0, where H.T is the transpose of the column
// ordered H.
func (l *LinearBlock) Validate() bool {
	return internal.ValidateHGMatrices(l.Processing.G, internal.ColumnSwapped(l.H, l.Processing.HColumnOrder))
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(l.H.String())
	buf.WriteString(fmt.Sprintf("Order: %v", l.Processing.HColumnOrder))
	buf.WriteString("\nG:\n")
	buf.WriteString(l.Processing.G.String())
	buf.WriteString("\n}\n")
	return buf.String()
}
