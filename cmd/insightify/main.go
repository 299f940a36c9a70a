package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/insightify/insightify-go/internal/app"
	"github.com/insightify/insightify-go/internal/config"
	"github.com/insightify/insightify-go/internal/constants"
	"github.com/insightify/insightify-go/internal/domain"
	"github.com/insightify/insightify-go/internal/util"
	"go.uber.org/zap"
)

func main() {
	var (
		videoURL  = flag.String("url", "", "YouTube video URL to analyze")
		count     = flag.Int("count", constants.APIConfig.DefaultLimit, "number of comments to analyze")
		batchFile = flag.String("batch", "", "file with one \"<url> [count]\" per line")
		show      = flag.Bool("show", false, "print the last stored analysis")
		reset     = flag.Bool("reset", false, "clear the stored analysis and cached responses")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	buildCtx, buildCancel := context.WithTimeout(ctx, 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}

	code := run(ctx, container, options{
		videoURL:  *videoURL,
		count:     *count,
		batchFile: *batchFile,
		show:      *show,
		reset:     *reset,
	}, os.Stdout)
	container.Close()
	if code != 0 {
		os.Exit(code)
	}
}

type options struct {
	videoURL  string
	count     int
	batchFile string
	show      bool
	reset     bool
}

func run(ctx context.Context, c *app.Container, opts options, out io.Writer) int {
	f := c.Formatter

	switch {
	case opts.reset:
		if err := c.Analyzer.Reset(ctx); err != nil {
			c.Logger.Error("Failed to reset analysis", zap.Error(err))
			return 1
		}
		fmt.Fprintln(out, "🧹 Stored analysis cleared.")
		return 0

	case opts.show:
		d, err := c.Analyzer.Current(ctx)
		if stderrors.Is(err, app.ErrNoResults) {
			fmt.Fprintln(out, f.FormatError("No analysis stored yet. Run with -url first."))
			return 1
		}
		if err != nil {
			c.Logger.Error("Failed to load analysis", zap.Error(err))
			return 1
		}
		fmt.Fprintln(out, f.FormatDashboard(d))
		return 0

	case opts.batchFile != "":
		reqs, err := readBatchFile(opts.batchFile, opts.count)
		if err != nil {
			c.Logger.Error("Failed to read batch file", zap.String("file", opts.batchFile), zap.Error(err))
			return 1
		}
		failed := 0
		for i, r := range c.Analyzer.AnalyzeBatch(ctx, reqs) {
			var msg string
			if r.Err != nil {
				msg = app.UserMessage(r.Err)
				failed++
			}
			fmt.Fprintln(out, f.FormatBatchItem(i, r.Request, r.Dashboard, msg))
		}
		if failed > 0 {
			return 1
		}
		return 0

	case opts.videoURL != "":
		d, err := c.Analyzer.Analyze(ctx, domain.AnalysisRequest{VideoURL: opts.videoURL, CommentCount: opts.count})
		if err != nil {
			fmt.Fprintln(out, f.FormatError(app.UserMessage(err)))
			return 1
		}
		fmt.Fprintln(out, f.FormatDashboard(d))
		return 0

	default:
		flag.Usage()
		return 2
	}
}

func readBatchFile(path string, defaultCount int) ([]domain.AnalysisRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseBatch(file, defaultCount)
}

// parseBatch reads "<url> [count]" lines; blank lines and lines starting with # are skipped.
func parseBatch(r io.Reader, defaultCount int) ([]domain.AnalysisRequest, error) {
	var reqs []domain.AnalysisRequest
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		req := domain.AnalysisRequest{VideoURL: fields[0], CommentCount: defaultCount}
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid comment count %q", lineNo, fields[1])
			}
			req.CommentCount = n
		}
		reqs = append(reqs, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}
