package decode

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/beliefprop"
	mat "github.com/nathanhack/sparsemat"
	"github.com/spf13/cobra"
)

var (
	CrossoverProbability float64
	MaxIter              uint
	RuleName             string
	TieBreakOne          bool
	Threads              uint
	Ascii                bool
)

var DecodeRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both ECC_JSON_FILE RECEIVED")
		return
	}

	rule, err := beliefprop.ParseRule(RuleName)
	if err != nil {
		fmt.Println(err)
		return
	}

	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}

	received, err := tools.LoadBitVector(args[1], ecc.CodewordLength())
	if err != nil {
		fmt.Println(err)
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	result, err := beliefprop.Decode(ctx, ecc.H, received, CrossoverProbability, beliefprop.Config{
		MaxIterations: int(MaxIter),
		Rule:          rule,
		TieBreakOne:   TieBreakOne,
		Threads:       int(Threads),
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	if result.Converged {
		fmt.Printf("converged after %v iterations\n", result.Iterations)
	} else {
		fmt.Printf("UNRELIABLE: failed to converge within %v iterations, output is a best effort estimate\n", MaxIter)
	}

	message := ecc.Decode(result.Decoded)
	fmt.Println("codeword:", bitString(result.Decoded))
	fmt.Println("message:", bitString(message))

	if Ascii {
		fmt.Println("ascii:", bitsToASCII(message))
	}
}

func bitString(bits mat.SparseVector) string {
	buf := strings.Builder{}
	for i := 0; i < bits.Len(); i++ {
		if bits.At(i) == 1 {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	return buf.String()
}

// bitsToASCII renders the message bits as consecutive 8 bit (MSB first)
// ASCII characters, the convention callers use for text payloads (e.g. a
// 248 bit message carries 31 characters). Trailing bits short of a full
// byte are dropped.
func bitsToASCII(bits mat.SparseVector) string {
	buf := strings.Builder{}
	for i := 0; i+8 <= bits.Len(); i += 8 {
		b := byte(0)
		for j := 0; j < 8; j++ {
			b = b<<1 | byte(bits.At(i+j))
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
