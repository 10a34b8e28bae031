// Companion match - one-shot image recognition from the command line.
//
// Searches a model image in a list of scene images and prints every
// match. Exercises the boundary surface (pkg/bridge) end to end.
//
// Usage:
//
//	companion-match [-detector ORB] [-matcher BF] model.jpg scene1.jpg [scene2.jpg ...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/libcompanion/companion-go/internal/config"
	"github.com/libcompanion/companion-go/internal/log"
	"github.com/libcompanion/companion-go/pkg/bridge"
)

func main() {
	detector := flag.String("detector", "", "feature detector: ORB, BRISK, AKAZE or KAZE (default ORB)")
	matcher := flag.String("matcher", "", "descriptor matcher: BF or FLANN (default BF)")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: companion-match [flags] model.jpg scene1.jpg [scene2.jpg ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log.Init(config.LogLevel("warn"))

	modelPath := flag.Arg(0)
	scenePaths := flag.Args()[1:]

	fmt.Println("🔍 Companion Match")
	fmt.Printf("Model:  %s\n", modelPath)
	fmt.Printf("Scenes: %d image(s)\n\n", len(scenePaths))

	// Handle Ctrl+C.
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, modelPath, scenePaths, *detector, *matcher); err != nil {
		fail(err)
	}
}

func run(ctx context.Context, modelPath string, scenePaths []string, detector, matcher string) error {
	matching, err := bridge.NewFeatureMatching(detector, matcher)
	if err != nil {
		return err
	}
	defer matching.Close()

	model, err := bridge.NewModel(0, modelPath)
	if err != nil {
		return err
	}

	stream := bridge.NewImageStream(scenePaths)
	defer stream.Close()

	cfg := bridge.NewConfiguration()
	defer cfg.Close()

	if err := cfg.SetImageSource(stream); err != nil {
		return err
	}
	if err := cfg.SetFeatureMatching(matching); err != nil {
		return err
	}
	if err := cfg.AddModel(model); err != nil {
		return err
	}

	frame := 0
	found := 0
	runErr := cfg.Run(ctx, func(results []bridge.Result) {
		frame++
		if len(results) == 0 {
			fmt.Printf("   frame %d: no match\n", frame)
			return
		}
		for _, r := range results {
			found++
			fmt.Printf("✅ frame %d: model %d at (%d,%d) %dx%d score %.2f\n",
				frame, r.ModelID, r.X, r.Y, r.Width, r.Height, r.Score)
		}
	})
	if runErr != nil {
		return runErr
	}

	fmt.Printf("\nDone: %d match(es) in %d frame(s)\n", found, frame)
	return nil
}

// fail prints a boundary error with its enumerated code and message.
func fail(err error) {
	var code bridge.ErrorCode
	if errors.As(err, &code) {
		fmt.Fprintf(os.Stderr, "❌ error %d: %s\n", code, code.Message())
	} else {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
	os.Exit(1)
}
