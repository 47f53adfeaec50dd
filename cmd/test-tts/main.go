// Quick check that the Piper pipeline works on this machine:
//
//	go run ./cmd/test-tts "Hello, I am the debug duck"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/debug-duck/go-duck/pkg/tts"
)

func main() {
	exe := flag.String("piper", "", "piper executable (default ./piper/piper)")
	voice := flag.String("voice", "", "voice model path")
	flag.Parse()

	text := strings.Join(flag.Args(), " ")
	if text == "" {
		text = "Quack. The debug duck is online."
	}

	var opts []tts.Option
	if *exe != "" {
		opts = append(opts, tts.WithExecutable(*exe))
	}
	if *voice != "" {
		opts = append(opts, tts.WithVoiceModel(*voice))
	}

	speaker, err := tts.NewPiper(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "piper setup failed: %v\n", err)
		os.Exit(1)
	}
	defer speaker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("speaking: %q\n", text)
	if err := speaker.Speak(ctx, text); err != nil {
		fmt.Fprintf(os.Stderr, "speak failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("done")
}
