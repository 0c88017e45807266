// Package browser drives a stealth headless Chrome session via chromedp.
// It implements the page surface the scraping strategies consume: bounded
// navigation, rendered-content retrieval, selector waits, scroll triggering,
// and network-response subscription.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

type Session struct {
	log *zap.Logger

	ctx         context.Context
	ctxCancel   context.CancelFunc
	allocCancel context.CancelFunc
}

// Launch starts a headless Chrome with anti-detection measures: randomized
// user agent and window size, AutomationControlled disabled, and realistic
// Accept-Language headers. The returned session owns one tab reused for the
// whole run.
func Launch(parent context.Context, log *zap.Logger) (*Session, error) {
	ua := pickUserAgent()
	vp := pickViewport()

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.UserAgent(ua),
			chromedp.WindowSize(vp.Width, vp.Height),
		)...,
	)

	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		log:         log,
		ctx:         ctx,
		ctxCancel:   ctxCancel,
		allocCancel: allocCancel,
	}

	err := chromedp.Run(ctx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language":    "en-US,en;q=0.9",
			"Sec-CH-UA-Platform": `"Linux"`,
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	log.Info("browser launched",
		zap.String("user_agent", ua),
		zap.Int("viewport_width", vp.Width),
		zap.Int("viewport_height", vp.Height),
	)
	return s, nil
}

func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.ctxCancel != nil {
		s.ctxCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	if s.log != nil {
		s.log.Info("browser closed")
	}
}

// bindCancel derives a timeout-bounded context from the session context
// whose cancellation also follows the caller's ctx, so a shutdown signal
// interrupts an in-flight CDP operation instead of waiting out the timeout.
func bindCancel(session, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(session, timeout)
	stop := context.AfterFunc(caller, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate loads url in the session tab and waits for the document body,
// bounded by timeout.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := bindCancel(s.ctx, ctx, timeout)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// HTML returns the rendered markup of the current document.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var html string
	runCtx, cancel := bindCancel(s.ctx, ctx, 15*time.Second)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", err
	}
	return html, nil
}

// WaitVisible blocks until selector matches a visible element or timeout
// elapses.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := bindCancel(s.ctx, ctx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// ScrollByViewport scrolls one viewport height to trigger lazy loading.
func (s *Session) ScrollByViewport(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := bindCancel(s.ctx, ctx, 10*time.Second)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
	)
}

// OnResponse subscribes fn to every network response in the session. Bodies
// only become readable once loading finishes, so response metadata is held by
// request ID until the matching loading-finished event, then the body is
// fetched on a separate goroutine (fetching inside the event handler would
// deadlock the CDP message loop).
func (s *Session) OnResponse(fn func(url string, status int, contentType string, body []byte)) {
	type responseMeta struct {
		url         string
		status      int
		contentType string
	}

	var mu sync.Mutex
	pending := make(map[network.RequestID]responseMeta)

	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			mu.Lock()
			pending[e.RequestID] = responseMeta{
				url:         e.Response.URL,
				status:      int(e.Response.Status),
				contentType: e.Response.MimeType,
			}
			mu.Unlock()

		case *network.EventLoadingFinished:
			mu.Lock()
			meta, ok := pending[e.RequestID]
			delete(pending, e.RequestID)
			mu.Unlock()
			if !ok {
				return
			}
			go func() {
				c := chromedp.FromContext(s.ctx)
				body, err := network.GetResponseBody(e.RequestID).Do(cdp.WithExecutor(s.ctx, c.Target))
				if err != nil {
					return
				}
				fn(meta.url, meta.status, meta.contentType, body)
			}()
		}
	})
}
