// Package reviews is the narrow client for the upstream review API. The
// review workflow itself lives upstream; this package only consumes it.
package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Review struct {
	Id           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Desc         string `json:"desc"`
	Rating       int    `json:"rating"`
	ProductTitle string `json:"productTitle"`
}

type Client struct {
	BaseUrl string
	Http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		BaseUrl: strings.TrimRight(baseUrl, "/"),
		Http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]Review, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseUrl, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("review list failed: %s", res.Status)
	}
	var all []Review
	if err := json.NewDecoder(res.Body).Decode(&all); err != nil {
		return nil, err
	}
	return all, nil
}

// ListForProduct filters client side; the mock API has no product
// parameter.
func (c *Client) ListForProduct(ctx context.Context, productTitle string) ([]Review, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]Review, 0)
	for _, review := range all {
		if strings.EqualFold(review.ProductTitle, productTitle) {
			matching = append(matching, review)
		}
	}
	return matching, nil
}

func (c *Client) Create(ctx context.Context, review Review) (*Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrInvalidRating
	}
	body, err := json.Marshal(review)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseUrl, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("review create failed: %s", res.Status)
	}
	var created Review
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseUrl+"/"+id, nil)
	if err != nil {
		return err
	}
	res, err := c.Http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		return fmt.Errorf("review delete failed: %s", res.Status)
	}
	return nil
}
