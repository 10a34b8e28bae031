// Companion stream - run a processing pipeline from a YAML config and
// serve a live preview of annotated frames and match results.
//
// Usage:
//
//	companion-stream -config pipeline.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gocv.io/x/gocv"

	"github.com/libcompanion/companion-go/internal/config"
	"github.com/libcompanion/companion-go/internal/log"
	"github.com/libcompanion/companion-go/pkg/companion"
	"github.com/libcompanion/companion-go/pkg/web"
)

func main() {
	configPath := flag.String("config", "pipeline.yaml", "pipeline config file")
	flag.Parse()

	pipeline, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log.Init(config.LogLevel(pipeline.LogLevel))

	fmt.Println("📺 Companion Stream")
	fmt.Printf("Config: %s\n", *configPath)

	// Handle Ctrl+C.
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down")
		cancel()
	}()

	if err := run(ctx, pipeline); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, pipeline *config.Pipeline) error {
	source, desc, err := openSource(pipeline.Source)
	if err != nil {
		return err
	}
	defer source.Close()

	cfg := companion.NewConfiguration()
	cfg.SetSource(source)

	if len(pipeline.Models) > 0 {
		mcfg := companion.DefaultMatchingConfig()
		if pipeline.Matching.Detector != "" {
			mcfg.Detector = pipeline.Matching.Detector
		}
		if pipeline.Matching.Matcher != "" {
			mcfg.Matcher = pipeline.Matching.Matcher
		}
		if pipeline.Matching.Ratio > 0 {
			mcfg.Ratio = pipeline.Matching.Ratio
		}
		if pipeline.Matching.MinMatches > 0 {
			mcfg.MinMatches = pipeline.Matching.MinMatches
		}

		matching, err := companion.NewFeatureMatching(mcfg)
		if err != nil {
			return err
		}
		defer matching.Close()
		cfg.SetFeatureMatching(matching)

		for _, m := range pipeline.Models {
			cfg.AddModel(companion.NewFeatureModel(m.ID, m.Path))
		}
	}

	if pipeline.Cascade != "" {
		detection, err := companion.NewObjectDetection(pipeline.Cascade)
		if err != nil {
			return err
		}
		defer detection.Close()
		cfg.SetObjectDetection(detection)
	}

	port := config.PreviewPort(pipeline.PreviewPort)
	server := web.NewServer(port)
	server.StartAsync()
	defer server.Shutdown()

	fmt.Printf("Source:  %s\n", desc)
	fmt.Printf("Models:  %d\n", len(pipeline.Models))
	fmt.Printf("Preview: http://localhost:%s\n\n", port)

	server.UpdateStatus(func(st *web.PipelineStatus) {
		st.Running = true
		st.Source = desc
		st.Models = len(pipeline.Models)
	})

	cfg.SetHandler(func(frame gocv.Mat, results []companion.Result) {
		server.PublishFrame(frame, cfg.Frames(), results)
		server.UpdateStatus(func(st *web.PipelineStatus) {
			st.Frames = cfg.Frames()
			st.Detections += len(results)
		})
	})

	if err := cfg.Run(ctx); err != nil {
		return err
	}

	server.UpdateStatus(func(st *web.PipelineStatus) {
		st.Running = false
	})
	fmt.Printf("Processed %d frame(s); preview stays up until Ctrl+C\n", cfg.Frames())

	// Keep serving the result history until interrupted.
	<-ctx.Done()
	return nil
}

// openSource builds the configured frame source and a short description
// of it for the status feed.
func openSource(src config.SourceConfig) (companion.Stream, string, error) {
	switch {
	case len(src.Images) > 0:
		return companion.NewImageStream(src.Images), fmt.Sprintf("images:%d", len(src.Images)), nil
	case src.Video != "":
		s, err := companion.NewVideoStream(src.Video)
		if err != nil {
			return nil, "", err
		}
		return s, "video:" + src.Video, nil
	case src.Device != nil:
		s, err := companion.NewDeviceStream(*src.Device)
		if err != nil {
			return nil, "", err
		}
		return s, fmt.Sprintf("device:%d", *src.Device), nil
	default:
		return nil, "", companion.VideoSrcNotSet
	}
}
