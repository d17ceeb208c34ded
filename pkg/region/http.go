package region

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
)

// HTTPRegion asks a compute engine exposing journeys over HTTP/JSON
type HTTPRegion struct {
	Name       string
	URL        string
	Timeout    time.Duration
	MaxRetries uint64

	Client *http.Client
}

func NewHTTPRegion(name string, baseURL string, timeout time.Duration) *HTTPRegion {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPRegion{
		Name:       name,
		URL:        baseURL,
		Timeout:    timeout,
		MaxRetries: defaultMaxRetries,
		Client:     &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRegion) GetName() string {
	return r.Name
}

// CallQuery gives the query parameters sent to the engine for a call. The encoded
// form is stable and also used as a cache key.
func CallQuery(call Call) url.Values {
	request := call.Request
	query := url.Values{}

	query.Set("from", request.Origin)
	query.Set("to", request.Destination)
	query.Set("datetime", strconv.FormatInt(request.Datetime, 10))
	query.Set("clockwise", strconv.FormatBool(request.Clockwise))
	query.Set("first_section_mode", call.OriginMode)
	query.Set("last_section_mode", call.DestinationMode)
	query.Set("direct_path", request.GetDirectPath())

	if request.MaxTransfers != nil {
		query.Set("max_transfers", strconv.Itoa(*request.MaxTransfers))
	}
	for _, mode := range request.DirectPathMode {
		query.Add("direct_path_mode", mode)
	}

	return query
}

func (r *HTTPRegion) Journeys(ctx context.Context, call Call) (*ctdf.Response, error) {
	endpoint := fmt.Sprintf("%s/journeys?%s", r.URL, CallQuery(call).Encode())

	var response *ctdf.Response

	operation := func() error {
		requestCtx, cancel := context.WithTimeout(ctx, r.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("region %s answered %d", r.Name, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		// engines answer 4xx with an error document that is still a valid response
		var decoded ctdf.Response
		if err := json.Unmarshal(body, &decoded); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding %s response: %w", r.Name, err))
		}

		response = &decoded
		return nil
	}

	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.MaxRetries), ctx)
	err := backoff.RetryNotify(operation, retryPolicy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("region", r.Name).Str("wait", wait.String()).Msg("Retrying region call")
	})
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrNoResponse
	}

	return response, nil
}
