package gardenaClient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"

	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaCommands"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaJsonApi"
	"github.com/zabeloliver/gardena-prometheus-exporter/gardena-api/gardenaStructs"
)

const (
	DefaultBaseURL = "https://smart.gardena.com/sg-1"
	DefaultTimeout = 30 * time.Second

	sessionHeader = "X-Session"
)

// Hub is a client for the Gardena Smart System API. It keeps the session of
// the last Login and is not safe for concurrent use.
type Hub struct {
	username string
	password string
	session  gardenaStructs.Session
	baseURL  string
	client   *http.Client
	header   http.Header
	metrics  *hubMetrics
	logger   *zap.SugaredLogger
}

type Option func(*Hub)

func WithBaseURL(baseURL string) Option {
	return func(h *Hub) {
		h.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(h *Hub) {
		h.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(h *Hub) {
		h.client.Timeout = timeout
	}
}

// WithRegisterer counts the API requests of the hub on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(h *Hub) {
		h.metrics = newHubMetrics(reg)
	}
}

func NewHub(username, password string, logger *zap.SugaredLogger, opts ...Option) *Hub {
	h := &Hub{
		username: username,
		password: password,
		baseURL:  DefaultBaseURL,
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout: 10 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		header: http.Header{},
		logger: logger,
	}
	h.header.Set("Content-Type", "application/json")
	h.header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Session returns the current session. It is empty while logged out.
func (h *Hub) Session() gardenaStructs.Session {
	return h.session
}

func (h *Hub) LoggedIn() bool {
	return h.session.Valid()
}

// Login authenticates with the configured credentials. On failure the hub
// is left logged out.
func (h *Hub) Login(ctx context.Context) error {
	h.session = gardenaStructs.Session{}
	h.header.Del(sessionHeader)

	h.logger.Infof("Logging in as %s", h.username)
	body, err := h.execute(ctx, "sessions", http.MethodPost, "/sessions", nil, gardenaJsonApi.NewSessionsRequest(h.username, h.password), false)
	if err != nil {
		h.logger.Error("Login failed: ", err)
		if _, ok := AsAPIError(err); ok {
			return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}
		return err
	}
	res, err := decode[gardenaJsonApi.SessionsResponse]("/sessions", body)
	if err != nil {
		h.logger.Error("Login failed: ", err)
		return err
	}
	if !res.Sessions.Valid() {
		h.logger.Error("Login failed: no token in response")
		return ErrAuthenticationFailed
	}

	h.session = res.Sessions
	h.header.Set(sessionHeader, h.session.Token)
	h.logger.Infof("Logged in, user id %s", h.session.UserId)
	return nil
}

// RetrieveLocations lists the locations of the logged in user in the order
// the API returns them.
func (h *Hub) RetrieveLocations(ctx context.Context) ([]gardenaStructs.Location, error) {
	query := url.Values{"user_id": {h.session.UserId}}
	body, err := h.execute(ctx, "locations", http.MethodGet, "/locations", query, nil, true)
	if err != nil {
		return nil, err
	}
	res, err := decode[gardenaJsonApi.LocationsResponse]("/locations", body)
	if err != nil {
		return nil, err
	}
	h.logger.Info("Get List of Locations: ", len(res.Locations))
	return res.Locations, nil
}

// RetrieveDevices lists the devices of location.
func (h *Hub) RetrieveDevices(ctx context.Context, location gardenaStructs.Location) ([]gardenaStructs.Device, error) {
	query := url.Values{"locationId": {location.Id}}
	body, err := h.execute(ctx, "devices", http.MethodGet, "/devices", query, nil, true)
	if err != nil {
		return nil, err
	}
	res, err := decode[gardenaJsonApi.DevicesResponse]("/devices", body)
	if err != nil {
		return nil, err
	}
	h.logger.Infof("Get List of Devices for %s: %d", location.Id, len(res.Devices))
	return res.Devices, nil
}

// SendCommand posts cmd to the ability of device it targets. Whether the
// device has that ability is left to the API.
func (h *Hub) SendCommand(ctx context.Context, location gardenaStructs.Location, device gardenaStructs.Device, cmd gardenaCommands.Command) error {
	path := fmt.Sprintf("/devices/%s/abilities/%s/command", url.PathEscape(device.Id), url.PathEscape(cmd.Ability))
	query := url.Values{"locationId": {location.Id}}
	h.logger.Infof("Sending %s to %s", cmd, device.Id)
	_, err := h.execute(ctx, "command", http.MethodPost, path, query, gardenaJsonApi.NewCommandRequest(cmd), true)
	if err != nil {
		h.logger.Errorf("Command %s for %s failed: %v", cmd, device.Id, err)
		return err
	}
	return nil
}

func (h *Hub) execute(ctx context.Context, endpoint, method, path string, query url.Values, data any, useSession bool) ([]byte, error) {
	if useSession && !h.session.Valid() {
		return nil, ErrNotAuthenticated
	}

	var reqBody io.Reader
	if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	target := h.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", path, err)
	}
	for key, values := range h.header {
		req.Header[key] = slices.Clone(values)
	}

	res, err := h.client.Do(req)
	if err != nil {
		h.metrics.observe(endpoint, "error")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()
	h.metrics.observe(endpoint, strconv.Itoa(res.StatusCode))

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	if res.StatusCode >= 400 {
		return nil, newAPIError(res.StatusCode, body)
	}
	return body, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		errs, err := gardenaJsonApi.ParseErrors(doc)
		if err != nil {
			apiErr.PayloadErr = fmt.Errorf("%w: error payload: %w", ErrMalformedResponse, err)
		}
		apiErr.Errors = errs
	}
	return apiErr
}

func decode[T any](path string, body []byte) (T, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, err)
	}
	res, err := gardenaStructs.Construct[T](doc)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrMalformedResponse, path, err)
	}
	return res, nil
}
