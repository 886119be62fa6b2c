package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/boy-johnny/fraud-data/utils"
)

// PNGRenderer screenshots each chart of the HTML page with headless Chrome.
type PNGRenderer struct {
	logger    *utils.Logger
	chromeBin string
	retry     *utils.RetryConfig
	timeout   time.Duration
}

// NewPNGRenderer creates a renderer. An empty chromeBin triggers a lookup on PATH.
func NewPNGRenderer(logger *utils.Logger, chromeBin string, retries int) *PNGRenderer {
	return &PNGRenderer{
		logger:    logger,
		chromeBin: chromeBin,
		retry: &utils.RetryConfig{
			MaxAttempts: retries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		timeout: 60 * time.Second,
	}
}

// Render captures the monthly and weekly charts from htmlPath into dir and
// returns the written PNG paths.
func (r *PNGRenderer) Render(ctx context.Context, htmlPath, dir string) ([]string, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("png: resolve %q: %w", htmlPath, err)
	}

	chromeBin := r.chromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	r.logger.Info("[render] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1600, 1400),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var written []string
	for _, id := range []string{MonthlyChartID, WeeklyChartID} {
		var buf []byte
		err := r.retry.Do(browserCtx, "screenshot-"+id, func(ctx context.Context) error {
			tctx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()
			return chromedp.Run(tctx,
				chromedp.Navigate("file://"+filepath.ToSlash(abs)),
				chromedp.Screenshot("#"+id, &buf, chromedp.NodeVisible, chromedp.ByQuery),
			)
		})
		if err != nil {
			return written, fmt.Errorf("png: %w", err)
		}

		path := filepath.Join(dir, id+".png")
		if err := os.WriteFile(path, buf, 0644); err != nil {
			return written, fmt.Errorf("png: write %q: %w", path, err)
		}
		r.logger.Info("[render] Chart image written to %s", path)
		written = append(written, path)
	}
	return written, nil
}

// findChromeBinary locates a Chrome/Chromium binary, or returns "" to let
// chromedp use its own defaults.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	for _, p := range []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
