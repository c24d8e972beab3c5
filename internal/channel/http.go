package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/san-kum/digitlive/internal/predict"
)

// maxResponse bounds the body read from the classifier.
const maxResponse = 1 << 20

type predictRequest struct {
	Image string `json:"image"`
}

// PostPredict sends one frame to the classifier's HTTP endpoint and decodes the
// reply with the same rules as the WebSocket path. Error statuses carry an
// error object and come back as *predict.ServerError.
func PostPredict(ctx context.Context, client *http.Client, url, dataURL string) (predict.Result, error) {
	if client == nil {
		client = http.DefaultClient
	}
	body, err := json.Marshal(predictRequest{Image: dataURL})
	if err != nil {
		return predict.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return predict.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return predict.Result{}, &predict.TransportError{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return predict.Result{}, &predict.TransportError{Op: "read", Err: err}
	}
	res, err := predict.Decode(data)
	if err == nil && resp.StatusCode != http.StatusOK {
		return predict.Result{}, &predict.TransportError{Op: "post", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return res, err
}
