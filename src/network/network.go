package network

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"game-data-server/src/helpers"
	"game-data-server/src/logger"
	"game-data-server/src/models"
)

// StatusError is a non-200 answer. Body holds the raw response so callers
// can decode the server's structured error.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %d", e.StatusCode)
}

// -----------------------------------------------------------------------------

type AsyncNetworkManager struct {
	Config     *models.MConfig
	Client     *http.Client
	Logger     *logger.Logger
	RetryDelay time.Duration
}

// -----------------------------------------------------------------------------

func NewAsyncNetworkManager(cfg *models.MConfig, log *logger.Logger) *AsyncNetworkManager {
	return &AsyncNetworkManager{
		Config: cfg,
		Logger: log,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
		RetryDelay: 500 * time.Millisecond,
	}
}

// -----------------------------------------------------------------------------

// retryable reports whether a failed GET may succeed on a later attempt:
// transport failures and the server's transient statuses.
func retryable(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return true
	}
	switch statusErr.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and exponential backoff.
func (nm *AsyncNetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	finalUrl := reqUrl.String()

	return helpers.RetryWithBackoff(nm.Logger, "GET "+finalUrl, nm.Config.Network.MaxRetries, nm.RetryDelay, retryable, func() ([]byte, error) {
		return nm.get(finalUrl)
	})
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) get(finalUrl string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, finalUrl, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if ua := nm.Config.Network.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := nm.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
