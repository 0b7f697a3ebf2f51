package controllers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"frontline-inventory/events"
	"frontline-inventory/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB    *gorm.DB
	Items *repositories.ItemRepository
	Stock *repositories.StockRepository
	Hub   *events.Hub
}

func NewDashboardController(db *gorm.DB, hub *events.Hub) *DashboardController {
	return &DashboardController{
		DB:    db,
		Items: repositories.NewItemRepository(db),
		Stock: repositories.NewStockRepository(db),
		Hub:   hub,
	}
}

// GetDashboard returns the inventory-wide aggregates and the most recent
// ledger entries.
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	stats, err := c.Items.Stats()
	if err != nil {
		return respondRepoError(ctx, err)
	}
	recent, err := c.Stock.ListTx(repositories.TxQuery{Limit: 50})
	if err != nil {
		return respondRepoError(ctx, err)
	}
	lowStock, err := c.Items.LowStockItems()
	if err != nil {
		return respondRepoError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"stats":     stats,
			"recent_tx": recent,
			"low_stock": lowStock,
		},
	})
}

// GetTransactions lists ledger entries with optional filters.
func (c *DashboardController) GetTransactions(ctx *fiber.Ctx) error {
	q := repositories.TxQuery{
		SKU:   ctx.Query("sku"),
		Limit: ctx.QueryInt("limit", 200),
	}
	if v := ctx.QueryInt("item_id"); v > 0 {
		id := uint(v)
		q.ItemID = &id
	}
	if v := ctx.QueryInt("co_id"); v > 0 {
		id := uint(v)
		q.CoID = &id
	}
	if s := ctx.Query("since"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.Since = &t
		}
	}
	if s := ctx.Query("until"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			q.Until = &t
		}
	}

	entries, err := c.Stock.ListTx(q)
	if err != nil {
		return respondRepoError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    entries,
	})
}

// StreamTransactions pushes committed ledger entries to the client over
// server-sent events. Delivery is at most once; a slow client misses events
// rather than holding back the writers.
func (c *DashboardController) StreamTransactions(ctx *fiber.Ctx) error {
	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	client := c.Hub.Register()
	hub := c.Hub

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer hub.Unregister(client.ID)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case event, ok := <-client.Events:
				if !ok {
					return
				}
				payload, err := json.Marshal(event)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
