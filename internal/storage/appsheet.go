package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
)

const appsheetAPIURL = "https://api.appsheet.com/api/v2"

// Backend table names.
const (
	tableProducts    = "Productos"
	tableFaq         = "FAQ"
	tableOrderHeader = "enc_pedido"
	tableOrderDetail = "Pedido"
)

var errMissingCredentials = fmt.Errorf("appsheet credentials not configured")

// AppSheetStore talks to the AppSheet v2 action API. Every operation is a
// POST of an action envelope to /apps/{appID}/tables/{table}/Action with
// the access key in the ApplicationAccessKey header.
type AppSheetStore struct {
	appID     string
	accessKey string
	baseURL   string
	client    *http.Client
}

// NewAppSheetStore builds a store from APPSHEET_APP_ID and
// APPSHEET_ACCESS_KEY. Missing credentials are logged once here; calls then
// fail with errMissingCredentials and the callers degrade to empty/false.
func NewAppSheetStore() *AppSheetStore {
	appID := os.Getenv("APPSHEET_APP_ID")
	accessKey := os.Getenv("APPSHEET_ACCESS_KEY")

	if appID == "" || accessKey == "" {
		log.Println("⚠️  AppSheet credentials not set - backend calls will return empty results")
	}

	return &AppSheetStore{
		appID:     appID,
		accessKey: accessKey,
		baseURL:   appsheetAPIURL,
		client:    &http.Client{},
	}
}

// actionRequest is the JSON envelope the AppSheet API expects.
type actionRequest struct {
	Action     string           `json:"Action"`
	Properties map[string]any   `json:"Properties"`
	Rows       []map[string]any `json:"Rows"`
}

func (s *AppSheetStore) doAction(ctx context.Context, table string, payload actionRequest, out any) error {
	if s.appID == "" || s.accessKey == "" {
		return errMissingCredentials
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s action: %w", payload.Action, err)
	}

	url := fmt.Sprintf("%s/apps/%s/tables/%s/Action", s.baseURL, s.appID, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("ApplicationAccessKey", s.accessKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", payload.Action, table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: backend returned %d: %s", payload.Action, table, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", payload.Action, table, err)
		}
	}
	return nil
}

// find fetches every row of a table. The Find action ignores Rows and
// returns the full table as a JSON array.
func (s *AppSheetStore) find(ctx context.Context, table string) ([]map[string]any, error) {
	var rows []map[string]any
	err := s.doAction(ctx, table, actionRequest{
		Action:     "Find",
		Properties: map[string]any{},
		Rows:       []map[string]any{},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AppSheetStore) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := s.find(ctx, tableProducts)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		name := stringField(row, "nombreProducto")
		if name == "" {
			continue
		}
		products = append(products, models.Product{
			Name:      name,
			UnitValue: numberField(row, "valor"),
		})
	}
	return products, nil
}

func (s *AppSheetStore) FaqEntries(ctx context.Context) ([]models.FaqEntry, error) {
	rows, err := s.find(ctx, tableFaq)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FaqEntry, 0, len(rows))
	for _, row := range rows {
		question := stringField(row, "pregunta")
		if question == "" {
			continue
		}
		entries = append(entries, models.FaqEntry{
			Question: question,
			Answer:   stringField(row, "respuesta"),
		})
	}
	return entries, nil
}

func (s *AppSheetStore) AddOrderHeader(ctx context.Context, order *models.Order) error {
	return s.doAction(ctx, tableOrderHeader, actionRequest{
		Action:     "Add",
		Properties: map[string]any{"Locale": "es-US"},
		Rows: []map[string]any{{
			"pedidoid":  order.OrderID,
			"enc_total": order.Total,
			"fecha":     order.Date,
			"cliente":   order.Customer,
			"direccion": order.Address,
			"celular":   order.Phone,
		}},
	}, nil)
}

func (s *AppSheetStore) AddOrderDetails(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]any{
			"pedidoid":         item.OrderID,
			"fecha":            time.Now().Format(time.RFC3339),
			"nombreProducto":   item.ProductName,
			"cantidadProducto": item.Quantity,
			"valor_unit":       item.UnitValue,
			"valor":            item.LineValue,
		})
	}

	return s.doAction(ctx, tableOrderDetail, actionRequest{
		Action:     "Add",
		Properties: map[string]any{"Locale": "es-US"},
		Rows:       rows,
	}, nil)
}

// stringField reads a string cell, tolerating non-string JSON values.
func stringField(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// numberField reads a numeric cell. AppSheet returns price columns as
// either numbers or formatted strings depending on the column type.
func numberField(row map[string]any, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
