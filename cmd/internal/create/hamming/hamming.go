package hamming

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nathanhack/ldpc/linearblock/hamming"
	"github.com/spf13/cobra"
)

var (
	ParityBits uint
	Threads    uint
)

var HammingRun = func(cmd *cobra.Command, args []string) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	h, err := hamming.New(ctx, int(ParityBits), int(Threads))
	if err != nil {
		fmt.Println("Unable to create hamming code: ", err)
		return
	}

	if h == nil {
		fmt.Println("Unable to create hamming code try again")
		return
	}

	bs, err := json.Marshal(h)
	if err != nil {
		fmt.Println("Unable to serialize the hamming code: ", err)
		return
	}

	err = os.WriteFile(args[0], bs, 0644)
	if err != nil {
		fmt.Println("unable to write file: ", err)
	}
}
