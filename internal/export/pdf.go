// Package export produces the paginated PDF download of a resume by
// printing the rendered export page in a headless browser. Requires
// Chrome/Chromium on the host.
package export

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds one print run.
const DefaultTimeout = 30 * time.Second

// Letter-size print parameters, matching the export page's @page rule.
const (
	pageWidthInches  = 8.5
	pageHeightInches = 11
	marginInches     = 0.75
)

// PDF renders the given standalone HTML page to letter-size PDF bytes.
func PDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, DefaultTimeout)
	defer cancel()

	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(html)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(pageWidthInches).
				WithPaperHeight(pageHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	return pdf, nil
}
