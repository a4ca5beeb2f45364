package blizzard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/errcodes"
	"ah_sniper/pkg/httpx"
	"ah_sniper/pkg/logx"
)

// Blizzard serves stale Last-Modified values shortly after a dump refresh,
// the pad keeps If-Modified-Since from missing new data on desynced servers.
const modifiedSincePad = 10 * time.Minute

// itemLevelModifierType marks the listing modifier carrying the item level.
const itemLevelModifierType = 9

type Config struct {
	APIBaseURL   string
	TokenURL     string
	Region       string
	Locale       string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client downloads auction house dumps from the battle.net game data API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	namespace  string
	locale     string
}

func NewClient(cfg Config, opts ...httpx.Option) *Client {
	auth := newClientCredentials(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret)

	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(http.DefaultTransport, opts...),
		auth,
	)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		namespace: "dynamic-" + strings.ToLower(cfg.Region),
		locale:    cfg.Locale,
	}
}

// Auctions downloads one connected realm's dump. A zero modifiedSince asks
// unconditionally, otherwise a 304 comes back as errcodes.UnmodifiedData.
func (c *Client) Auctions(ctx context.Context, connectedRealmID int64, modifiedSince time.Time) (entity.AuctionDump, error) {
	url := fmt.Sprintf("%s/data/wow/connected-realm/%d/auctions?namespace=%s&locale=%s",
		c.baseURL, connectedRealmID, c.namespace, c.locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entity.AuctionDump{}, fmt.Errorf("build auctions request: %w", err)
	}

	if !modifiedSince.IsZero() {
		req.Header.Set("If-Modified-Since", modifiedSince.Add(modifiedSincePad).UTC().Format(http.TimeFormat))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.AuctionDump{}, fmt.Errorf("download auctions: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		return entity.AuctionDump{}, domain.NewError(errcodes.UnmodifiedData,
			fmt.Sprintf("connected realm %d has no new auction data", connectedRealmID))
	case http.StatusTooManyRequests:
		return entity.AuctionDump{}, domain.NewError(errcodes.QuotaExceeded,
			"battle.net API quota exceeded")
	case http.StatusNotFound:
		return entity.AuctionDump{}, domain.NewError(errcodes.RealmNotFound,
			fmt.Sprintf("connected realm %d not found", connectedRealmID))
	default:
		return entity.AuctionDump{}, fmt.Errorf("auctions endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.AuctionDump{}, fmt.Errorf("read auctions body: %w", err)
	}

	sum := sha256.Sum256(body)

	var wire auctionsResponse
	if err := jsoniter.Unmarshal(body, &wire); err != nil {
		return entity.AuctionDump{}, fmt.Errorf("unmarshal auctions: %w", err)
	}

	dump := entity.AuctionDump{
		ConnectedRealmID: connectedRealmID,
		Auctions:         wire.toDomain(),
		LastModified:     parseLastModified(resp.Header.Get("Last-Modified")),
		Hash:             hex.EncodeToString(sum[:]),
	}

	logger(ctx).Info("auction dump downloaded",
		logx.FieldConnectedRealm, connectedRealmID,
		"auctions", len(dump.Auctions),
		"last_modified", dump.LastModified,
	)

	return dump, nil
}

func parseLastModified(header string) time.Time {
	if header == "" {
		return time.Time{}
	}

	t, err := http.ParseTime(header)
	if err != nil {
		return time.Time{}
	}

	return t
}
