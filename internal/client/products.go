package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/erazemk/konzola/internal/model"
)

// Products returns every product with its stock figures.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "/api/getAllProducts")
}

// Product returns one product with its incoming stocks.
func (c *Client) Product(ctx context.Context, id int64) (*model.Product, error) {
	return getOne[model.Product](ctx, c, fmt.Sprintf("/api/getAllProducts/%d", id))
}

// CreateProduct creates a product from payload and returns it.
func (c *Client) CreateProduct(ctx context.Context, payload any) (*model.Product, error) {
	var p model.Product
	if err := c.Post(ctx, "/api/products", payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces the product's fields with payload.
func (c *Client) UpdateProduct(ctx context.Context, id int64, payload any) error {
	return c.Put(ctx, fmt.Sprintf("/api/products/%d", id), payload, nil)
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/products/%d", id))
}

// UploadProductImage uploads an already processed photo for a product.
func (c *Client) UploadProductImage(ctx context.Context, id int64, data []byte, mimeType string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="image"`)
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	path := fmt.Sprintf("/api/products/%d/image", id)
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), nil)
}

// ProductLogs returns the stock movement log of a product.
func (c *Client) ProductLogs(ctx context.Context, id int64) ([]model.ProductLog, error) {
	var logs []model.ProductLog
	if err := c.Get(ctx, fmt.Sprintf("/api/products/%d/logs", id), &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.ProductLog{}
	}
	return logs, nil
}

// AvailableIncomingStocks returns the units of a machine product that can be
// lent out as demo units.
func (c *Client) AvailableIncomingStocks(ctx context.Context, productID int64) ([]model.IncomingStock, error) {
	var stocks []model.IncomingStock
	if err := c.Get(ctx, fmt.Sprintf("/api/availableIncomingStocks/%d", productID), &stocks); err != nil {
		return nil, err
	}
	if stocks == nil {
		stocks = []model.IncomingStock{}
	}
	return stocks, nil
}
