package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"

	"github.com/ayush/sourcing-assistant/backend/internal/content"
	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; SourcingAssistant/1.0)"
	maxPageBytes     = 8 << 20
)

// ErrBlockedAddress is returned when a tab URL is not a public http(s) address.
var ErrBlockedAddress = errors.New("browser: address not allowed")

// FetchBrowser loads the active tab's page over HTTP. The tab itself comes
// from the request context (see WithTab), as reported by the side panel.
// Only public http(s) hosts are fetched unless AllowPrivateNetworks is set.
type FetchBrowser struct {
	client       *http.Client
	registry     *extract.Registry
	userAgent    string
	allowPrivate bool
	frames       *frames
}

// FetchOption configures a FetchBrowser.
type FetchOption func(*FetchBrowser)

// AllowPrivateNetworks lets the browser fetch loopback, private and
// link-local addresses. Local development only.
func AllowPrivateNetworks() FetchOption {
	return func(b *FetchBrowser) { b.allowPrivate = true }
}

// NewFetchBrowser returns a FetchBrowser whose requests time out after timeout.
func NewFetchBrowser(registry *extract.Registry, timeout time.Duration, opts ...FetchOption) *FetchBrowser {
	b := &FetchBrowser{
		registry:  registry,
		userAgent: defaultUserAgent,
		frames:    newFrames(),
	}
	for _, opt := range opts {
		opt(b)
	}

	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
	if !b.allowPrivate {
		dialer.Control = publicOnly
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// A proxy would be dialed instead of the target, bypassing the check.
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	b.client = &http.Client{Timeout: timeout, Transport: transport}
	return b
}

// publicOnly runs after name resolution, so it sees the address actually dialed.
func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip = ip.Unmap()
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified() || ip.IsMulticast() {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ip)
	}
	return nil
}

func checkScheme(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBlockedAddress, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrBlockedAddress, u.Scheme)
	}
	return nil
}

func (b *FetchBrowser) ActiveTab(ctx context.Context) (*models.Tab, error) {
	tab, ok := TabFrom(ctx)
	if !ok || tab.URL == "" {
		return nil, nil
	}
	return &tab, nil
}

func (b *FetchBrowser) Inject(ctx context.Context, tab models.Tab) error {
	if err := checkScheme(tab.URL); err != nil {
		return fmt.Errorf("%w: %w", ErrInjectFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tab.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	req.Header.Set("User-Agent", b.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInjectFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s returned %d", ErrInjectFailed, tab.URL, resp.StatusCode)
	}

	doc, err := extract.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	b.frames.install(tab.ID, content.NewAgent(tab.URL, doc, b.registry))
	return nil
}

func (b *FetchBrowser) SendMessage(ctx context.Context, tabID string, msg models.ExtractMessage) (models.ExtractReply, error) {
	return b.frames.send(ctx, tabID, msg)
}
