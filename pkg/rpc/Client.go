package rpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/simplecontainer/sapha/pkg/static"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func NewClient(address string, port int, timeout time.Duration) *Client {
	return &Client{
		URL: fmt.Sprintf("http://%s%s", net.JoinHostPort(address, strconv.Itoa(port)), static.RPC_PATH),
		Http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:       (&net.Dialer{Timeout: min(timeout, static.RPC_DIAL_TIMEOUT)}).DialContext,
				DisableKeepAlives: true,
			},
		},
	}
}

// Call performs one request. A 4xx answer is ERROR_REJECTED and must not be
// retried. Every other failure to obtain a decodable response is reported as
// ERROR_TRANSIENT; application failures come back in Response.
func (client *Client) Call(ctx context.Context, method string, params ...string) (Response, error) {
	if params == nil {
		params = []string{}
	}

	body, err := json.Marshal(Request{Method: method, Params: params})

	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.URL, bytes.NewReader(body))

	if err != nil {
		return Response{}, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Http.Do(req)

	if err != nil {
		return Response{}, fmt.Errorf("%w: %s", ERROR_TRANSIENT, err.Error())
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return Response{}, fmt.Errorf("%w: reading response: %s", ERROR_TRANSIENT, err.Error())
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return Response{}, fmt.Errorf("%w: %s returned http %d: %s", ERROR_REJECTED, method, resp.StatusCode, bytes.TrimSpace(data))
	}

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("%w: %s returned http %d", ERROR_TRANSIENT, method, resp.StatusCode)
	}

	response := Response{}

	if err = json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("%w: bad response: %s", ERROR_TRANSIENT, err.Error())
	}

	switch response.Status {
	case STATUS_OK, STATUS_PENDING, STATUS_FAILED:
	default:
		return Response{}, fmt.Errorf("%w: bad response status %q", ERROR_TRANSIENT, response.Status)
	}

	return response, nil
}

func (client *Client) Close() error {
	client.Http.CloseIdleConnections()
	return nil
}
