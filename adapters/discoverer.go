package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"deliverygateway/domain"
	"deliverygateway/helpers"
	"deliverygateway/interfaces"
)

const discovererRequestTimeout = 5 * time.Second

// DiscovererHTTP creates an interfaces.Discoverer that talks to a discoverer over HTTP: GET baseURL/v1/instances
// and POST baseURL/v1/unregister/{instance_id}. Panics on empty baseURL or nil client.
//
// Parameters: baseURL — discoverer base URL (e.g. http://discoverer:8080), a trailing slash is trimmed;
// client — HTTP client.
//
// Returns: interfaces.Discoverer (*discovererHTTP).
//
// Called from cmd/gateway for each service with a discoverer_url.
func DiscovererHTTP(baseURL string, client *http.Client) interfaces.Discoverer {
	return &discovererHTTP{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "adapters.discoverer.go: baseURL is required"), "/"),
		client:  helpers.NilPanic(client, "adapters.discoverer.go: http client is required"),
	}
}

type discovererHTTP struct {
	baseURL string
	client  *http.Client
}

// instancesResponse is the JSON shape of GET /v1/instances: { "instances": [ instanceInfo ] }.
type instancesResponse struct {
	Instances []instanceInfo `json:"instances"`
}

type instanceInfo struct {
	InstanceID string `json:"instance_id"`
	Ipv4       string `json:"ipv4"`
	Port       int    `json:"port"`
}

// GetInstances performs GET baseURL/v1/instances bounded by ctx and a 5s timeout. A 404 (no instances
// registered) is an empty list.
//
// Returns: ([]domain.ServiceInstance, nil) on 200 or 404; (nil, error) on other status, network error, JSON
// error or a body without the "instances" field.
//
// Called from service.DiscoverySync.Refresh.
func (d *discovererHTTP) GetInstances(ctx context.Context) ([]domain.ServiceInstance, error) {
	ctx, cancel := context.WithTimeout(ctx, discovererRequestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/v1/instances", nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return []domain.ServiceInstance{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discoverer returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var raw instancesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Instances == nil {
		return nil, fmt.Errorf("discoverer response missing instances field")
	}
	out := make([]domain.ServiceInstance, 0, len(raw.Instances))
	for _, r := range raw.Instances {
		out = append(out, domain.ServiceInstance{InstanceID: r.InstanceID, Ipv4: r.Ipv4, Port: r.Port})
	}
	return out, nil
}

// UnregisterInstance performs POST baseURL/v1/unregister/{instance_id}; instanceID is path-escaped.
//
// Returns: nil on 200; error on any other status or request error.
//
// Called from service.DiscoverySync.Evicted once an address stayed Down past the retention window.
func (d *discovererHTTP) UnregisterInstance(ctx context.Context, instanceID string) error {
	ctx, cancel := context.WithTimeout(ctx, discovererRequestTimeout)
	defer cancel()
	reqURL := d.baseURL + "/v1/unregister/" + url.PathEscape(instanceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discoverer unregister returned %d", resp.StatusCode)
	}
	return nil
}
