package maganghub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"maganghub-radar/internal/observability"
)

const (
	defaultBaseURL = "https://maganghub.kemnaker.go.id/be/v1/api/list/vacancies-aktif"
	userAgent      = "maganghub-radar/1.0"

	pageSize       = 100
	requestTimeout = 30 * time.Second
	// Pause between page requests so we do not trip upstream throttling.
	pageInterval = 500 * time.Millisecond
	// Breather before giving up after a failed page.
	failureCooldown = 2 * time.Second
)

// Client fetches active internship vacancies from the MagangHub listing API,
// walking the paginated envelope and flattening items into Vacancy records.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger
	provinceCode string
	maxPages     int
	cooldownWait time.Duration
}

// NewClient builds a listing client. maxPages caps the number of pages
// fetched per run; zero means no ceiling.
func NewClient(logger *zap.Logger, provinceCode string, maxPages int) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: requestTimeout},
		limiter:      rate.NewLimiter(rate.Every(pageInterval), 1),
		logger:       logger,
		provinceCode: provinceCode,
		maxPages:     maxPages,
		cooldownWait: failureCooldown,
	}
}

// FetchAll walks every listing page and returns the flattened records in
// fetch order. A page failure aborts the walk: the error describes the
// failure and the returned slice holds whatever was accumulated before it.
func (c *Client) FetchAll(ctx context.Context) ([]Vacancy, error) {
	var all []Vacancy

	first, err := c.fetchPage(ctx, 1)
	if err != nil {
		c.cooldown(ctx)
		return all, fmt.Errorf("fetch page 1: %w", err)
	}

	totalPages := first.Meta.Pagination.LastPage
	if totalPages < 1 {
		totalPages = 1
	}
	if c.maxPages > 0 && totalPages > c.maxPages {
		totalPages = c.maxPages
	}

	c.logger.Info("fetching vacancy listings",
		zap.Int("total_items", first.Meta.Pagination.Total),
		zap.Int("pages", totalPages),
	)

	all = append(all, extractVacancies(first.Data)...)
	observability.IncPageFetched()

	for page := 2; page <= totalPages; page++ {
		resp, err := c.fetchPage(ctx, page)
		if err != nil {
			c.logger.Warn("page fetch failed, returning partial results",
				zap.Int("page", page),
				zap.Error(err),
			)
			observability.IncError("fetcher")
			c.cooldown(ctx)
			return all, fmt.Errorf("fetch page %d: %w", page, err)
		}
		all = append(all, extractVacancies(resp.Data)...)
		observability.IncPageFetched()
	}

	observability.AddVacanciesFetched(len(all))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*listResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("order_by", "jumlah_kuota")
	q.Set("order_direction", "DESC")
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("kode_provinsi", c.provinceCode)
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("maganghub returned %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var parsed listResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	return &parsed, nil
}

func extractVacancies(items []vacancyItem) []Vacancy {
	out := make([]Vacancy, 0, len(items))
	for _, item := range items {
		quota := item.JumlahKuota
		applicants := item.JumlahTerdaftar

		out = append(out, Vacancy{
			ID:             item.IDPosisi.String(),
			Position:       orNA(item.Posisi),
			Company:        orNA(item.Perusahaan.NamaPerusahaan),
			Quota:          quota,
			Applicants:     applicants,
			Description:    orNA(stripHTML(item.Deskripsi)),
			EducationLevel: normalizeTitles(item.JenjangPendidikan),
			FieldOfStudy:   normalizeTitles(item.ProgramStudi),
			Odds:           Round2(Odds(quota, applicants)),
		})
	}
	return out
}

func (c *Client) cooldown(ctx context.Context) {
	select {
	case <-time.After(c.cooldownWait):
	case <-ctx.Done():
	}
}
